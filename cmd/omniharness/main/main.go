package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/omniharness/cmd/omniharness"
	"github.com/arthur-debert/omniharness/pkg/ui"
)

func main() {
	rootCmd := omniharness.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
		fmt.Fprint(os.Stderr, omniharness.FormatErrorDetails(err))
		os.Exit(1)
	}
}
