package main

import "github.com/furisto/ask/frontend/cli/cmd"

func main() {
	cmd.Execute()
}
