package main

import "github.com/steshaw/schemey/cmd"

func main() {
	cmd.Execute()
}
