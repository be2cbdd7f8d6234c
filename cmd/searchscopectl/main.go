// Command searchscopectl inspects field selection offline from mapping and
// settings files, and seeds settings into Redis or Valkey.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
