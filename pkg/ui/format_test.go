package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/omniharness/pkg/env"
	"github.com/arthur-debert/omniharness/pkg/errors"
	"github.com/arthur-debert/omniharness/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.FormatYAML, "yaml"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"auto", ui.FormatAuto, false},
		{"", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"TERMINAL", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"Json", ui.FormatJSON, false},
		{"yml", ui.FormatYAML, false},
		{"xml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("no_color_through_stubbed_env", func(t *testing.T) {
		stub := env.NewStub(nil)
		stub.Set("NO_COLOR", "1")
		defer env.Install(stub)()

		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("regular_file_is_not_a_terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
		assert.Equal(t, ui.FormatJSON, ui.Resolve(ui.FormatJSON, f))
		assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, f))
	})
}

func TestStyles(t *testing.T) {
	styles, err := ui.ParseStyles([]byte("colors:\n  red: {light: '#f00', dark: '#f00'}\nstyles:\n  Alert: {bold: true, foreground: red}\n"))
	require.NoError(t, err)
	assert.True(t, styles["Alert"].GetBold())

	_, err = ui.ParseStyles([]byte("colors: ["))
	assert.Error(t, err)

	assert.True(t, ui.GetStyle("Header").GetBold())
	assert.Equal(t, "plain", ui.Render("Header", "plain", false))
	assert.Contains(t, ui.Render("Header", "styled", true), "styled")
}

func TestTableRender(t *testing.T) {
	table := ui.Table{
		Header: []string{"PLATFORM", "VERSION"},
		Rows:   [][]string{{"ubuntu", "12.04"}, {"centos", "6.5"}},
	}

	var plain bytes.Buffer
	require.NoError(t, table.Render(&plain, false))
	assert.Equal(t, "PLATFORM\tVERSION\nubuntu\t12.04\ncentos\t6.5\n", plain.String())

	var styled bytes.Buffer
	require.NoError(t, table.Render(&styled, true))
	assert.Contains(t, styled.String(), "ubuntu")
	assert.Contains(t, styled.String(), "6.5")
}

func TestRenderMarkdown(t *testing.T) {
	out := ui.RenderMarkdown("# ubuntu\n\n- `kernel.name`: Linux\n", 60)
	assert.Contains(t, out, "ubuntu")
	assert.Contains(t, out, "Linux")
}
