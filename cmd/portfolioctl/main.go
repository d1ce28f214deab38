package main

import (
	"fmt"
	"os"

	"github.com/jtetteh/portfolio-cli/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
