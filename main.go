package main

import "github.com/diogo/malcolmweb/internal/commands"

func main() {
	commands.Execute()
}
