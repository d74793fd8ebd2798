package persist

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL,
    amount      REAL NOT NULL CHECK (amount >= 0)
);

CREATE INDEX IF NOT EXISTS idx_expenses_description ON expenses(description);
`
