package main

import "github.com/dszqbsm/dikicrawler/cmd"

func main() {
	cmd.Execute()
}
