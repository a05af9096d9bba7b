package main

import "github.com/nanitex-official/chatbot/internal/cli"

func main() {
	cli.Execute()
}
