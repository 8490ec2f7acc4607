package main

import (
	"os"

	"github.com/everdragons2/deployer/internal/cli"
)

func main() {
	os.Exit(cli.Run(cli.NewRootCmd()))
}
