// Command jsontools repairs JSON-like text and converts JSON documents into tables.
package main

import (
	"os"

	"github.com/damian-dev1/json-tools-and-utilities/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
