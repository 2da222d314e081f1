// Package main is the entry point for the symdiff CLI.
package main

import "symdiff.dev/pkg/symdiff/cmd"

func main() {
	cmd.Execute()
}
