package main

import "github.com/amterp/squares/internal/cli"

func main() {
	cli.Run()
}
