package main

import "github.com/fxckultimv/foodgram-project-react/cmd/foodgram/commands"

func main() {
	commands.Execute()
}
