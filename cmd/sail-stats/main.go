package main

import "github.com/mitsailing/sail-stats/internal/cli"

func main() {
	cli.Execute()
}
