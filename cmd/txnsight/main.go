package main

import "github.com/dkhanna/txnsight/internal/cli"

func main() {
	cli.Execute()
}
