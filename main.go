package main

import "github.com/bradford-hamilton/chipvm/cmd"

func main() {
	cmd.Execute()
}
