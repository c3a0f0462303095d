package main

import "github.com/iksnae/chat-snare/cmd"

func main() {
	cmd.Execute()
}
