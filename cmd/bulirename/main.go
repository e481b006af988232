package main

import (
	"os"

	"github.com/bulicmd/bulirename/cli"
)

func main() {
	os.Exit(cli.Execute())
}
