package main

import (
	"os"

	"github.com/dshills/snapdiff/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
