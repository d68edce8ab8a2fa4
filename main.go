package main

import (
	"ddbin-editor/cli"
)

func main() {
	cli.Start()
}
