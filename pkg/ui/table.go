package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Table is a header row plus data rows
type Table struct {
	Header []string
	Rows   [][]string
}

// Render writes the table. Unstyled output is tab separated.
func (t Table) Render(w io.Writer, styled bool) error {
	if !styled {
		lines := make([]string, 0, len(t.Rows)+1)
		lines = append(lines, strings.Join(t.Header, "\t"))
		for _, row := range t.Rows {
			lines = append(lines, strings.Join(row, "\t"))
		}
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	}

	data := pterm.TableData{t.Header}
	data = append(data, t.Rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
