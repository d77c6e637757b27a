package omniharness

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}

// outputFormat resolves --format against the command's writer. Writers that
// are not files never get terminal styling.
func outputFormat(cmd *cobra.Command, flag string) (ui.Format, error) {
	f, err := ui.ParseFormat(flag)
	if err != nil {
		return ui.FormatAuto, err
	}
	if f != ui.FormatAuto {
		return f, nil
	}
	if file, ok := cmd.OutOrStdout().(*os.File); ok {
		return ui.DetectFormat(file), nil
	}
	return ui.FormatText, nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// FormatErrorDetails renders the details attached to err, one indented
// "key: value" line each, sorted by key. Errors without details render empty.
func FormatErrorDetails(err error) string {
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %v\n", k, details[k])
	}
	return b.String()
}
