// Package main provides the yo CLI.
package main

import "github.com/mesh-intelligence/yo/internal/cli"

func main() {
	cli.Execute()
}
