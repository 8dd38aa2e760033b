package main

import "github.com/pfrederiksen/contest-radar/internal/cli"

func main() {
	cli.Execute()
}
