package main

import "github.com/killallgit/podcast-catalog/cmd"

func main() {
	cmd.Execute()
}
