// Command bookshelf runs the library catalog menu.
package main

import (
	"os"

	"github.com/roach88/bookshelf/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
