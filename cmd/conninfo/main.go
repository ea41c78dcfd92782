// Command conninfo builds SSH connection info for the hosts in a YAML hosts
// file and prints what would be used to connect.
package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
)

func main() {
	memguard.CatchInterrupt()

	err := rootCmd.Execute()
	memguard.Purge()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
