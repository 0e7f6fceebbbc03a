// Command ct_admin runs maintenance tasks against the tracker's record store.
package main

import (
	"os"

	"github.com/SscSPs/closing_tracker/internal/cli"
)

func main() {
	os.Exit(cli.New().Execute())
}
