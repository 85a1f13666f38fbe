package main

import "github.com/nlpkit/nespan/cmd"

func main() {
	cmd.Execute()
}
