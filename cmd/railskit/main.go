// Command railskit turns a freshly generated Rails skeleton into a starter
// app: gems, specs, helpers, and an HTML5 Boilerplate layout.
package main

import (
	"log"

	"github.com/brandonbloom/railskit/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("railskit: ")
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
