package main

import "github.com/faanross/simulacra_png/internal/cli"

func main() {
	cli.Execute()
}
