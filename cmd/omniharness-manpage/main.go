// Command omniharness-manpage writes the omniharness man page to stdout, or
// one page per command into the directory given as the only argument.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/omniharness/cmd/omniharness"
	"github.com/arthur-debert/omniharness/internal/version"
	"github.com/arthur-debert/omniharness/pkg/logging"
)

func main() {
	logging.Must(run(os.Args[1:]), "Error generating man page")
}

func run(args []string) error {
	rootCmd := omniharness.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "OMNIHARNESS",
		Section: "1",
		Source:  "omniharness " + version.Version,
		Manual:  "omniharness manual",
	}

	switch len(args) {
	case 0:
		return doc.GenMan(rootCmd, header, os.Stdout)
	case 1:
		if err := os.MkdirAll(args[0], 0755); err != nil {
			return err
		}
		return doc.GenManTree(rootCmd, header, args[0])
	default:
		return fmt.Errorf("usage: omniharness-manpage [output-dir]")
	}
}
