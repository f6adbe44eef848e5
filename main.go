// Package main is the entry point for rodust.
package main

import (
	"fmt"
	"os"

	"github.com/KAIYOHUGO/rodust/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
