package main

import "github.com/parlance-ai/parlance/cmd"

func main() {
	cmd.Execute()
}
