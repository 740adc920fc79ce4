package main

import (
	"os"

	"github.com/arlojansen/cdcl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
