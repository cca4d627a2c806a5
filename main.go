package main

import "github.com/ghsum/ghsum/cmd"

func main() {
	cmd.Execute()
}
