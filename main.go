// Package main is the entry point for the capsule CLI, the command-line
// client for the Capsule application platform.
package main

import "capsule/cmd"

func main() {
	cmd.Execute()
}
