package main

import "github.com/wedge762/deckpress/cmd"

func main() {
	cmd.Execute()
}
