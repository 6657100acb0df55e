// Package main is the motion CLI command itself.
package main

import (
	"fmt"
	"os"

	motioncli "github.com/motionlab/motion/cli"
)

func main() {
	if err := motioncli.NewApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
