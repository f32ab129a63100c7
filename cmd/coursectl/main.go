// Command coursectl holds maintenance tasks for the course service:
// linting slide decks and applying database migrations.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
