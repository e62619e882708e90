package main

import "github.com/pmarket/pm/cmd"

func main() {
	cmd.Execute()
}
