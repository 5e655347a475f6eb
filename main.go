package main

import "github.com/quizmcp/cmd"

func main() {
	cmd.Execute()
}
