// Package main provides the rankaroo CLI.
// Implements: rankaroo-cli;
//
//	docs/ARCHITECTURE § CLI.
package main

import "github.com/mesh-intelligence/rankaroo/internal/cli"

func main() {
	cli.Execute()
}
