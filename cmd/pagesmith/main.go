package main

import "pagesmith/cmd/pagesmith/commands"

func main() {
	commands.Execute()
}
