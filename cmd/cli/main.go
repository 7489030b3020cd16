// Package main implements the fuzzr CLI.
package main

import (
	"os"

	"github.com/dsjohal14/fuzzr/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
