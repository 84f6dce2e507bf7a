// Package main provides the entry point for the devkit CLI.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], systemDeps()))
}
