package main

import "home-budget/cmd"

func main() {
	cmd.Execute()
}
