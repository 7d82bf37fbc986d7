// conlog reports convention-publication uploads recorded in the ConEditor
// upload log since the previous run.
package main

import (
	"os"

	"github.com/fanac/conlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
