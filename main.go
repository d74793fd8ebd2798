package main

import "github.com/theirongolddev/xpense/cmd"

func main() {
	cmd.Execute()
}
