package main

import "github.com/pfrederiksen/tourboard/internal/cli"

func main() {
	cli.Execute()
}
