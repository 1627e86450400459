package main

import "github.com/mvp-joe/hdrwrap/internal/cli"

func main() {
	cli.Execute()
}
