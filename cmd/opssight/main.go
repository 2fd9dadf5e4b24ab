package main

import (
	"fmt"
	"os"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
