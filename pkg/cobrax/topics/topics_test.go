package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"isolation.md":    {Data: []byte("# Isolation\n\nEvery test starts clean.")},
		"option-seed.txt": {Data: []byte("Replays a shuffled order.")},
		"nested/facts.md": {Data: []byte("# Facts")},
		"ignored.json":    {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	tm := NewWithOptions(testFS(), Options{})
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"facts", "isolation", "option-seed"}, tm.ListTopics())

	topic, ok := tm.GetTopic("isolation")
	require.True(t, ok)
	assert.Equal(t, "isolation.md", topic.FilePath)

	_, ok = tm.GetTopic("ignored")
	assert.False(t, ok)
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := NewWithOptions(testFS(), Options{})
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"--seed", "-seed", "seed"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-seed", topic.Name)
	}
}

func TestCustomExtensions(t *testing.T) {
	tm := NewWithOptions(testFS(), Options{Extensions: []string{".json"}})
	require.NoError(t, tm.scanTopics())
	assert.Equal(t, []string{"ignored"}, tm.ListTopics())
}

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "app", Short: "test app"}
	root.AddCommand(&cobra.Command{Use: "plan", Short: "plan things", Run: func(*cobra.Command, []string) {}})
	return root
}

func runHelp(t *testing.T, root *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"help"}, args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestHelpCommand(t *testing.T) {
	t.Run("lists_topics", func(t *testing.T) {
		root := newRoot()
		_, err := InitializeWithOptions(root, testFS(), Options{})
		require.NoError(t, err)

		out := runHelp(t, root, "topics")
		assert.Contains(t, out, "General topics:")
		assert.Contains(t, out, "  isolation\n")
		assert.Contains(t, out, "  --seed\n")
		assert.Contains(t, out, "app help <topic>")
	})

	t.Run("shows_topic", func(t *testing.T) {
		root := newRoot()
		_, err := InitializeWithOptions(root, testFS(), Options{})
		require.NoError(t, err)

		assert.Equal(t, "Replays a shuffled order.", runHelp(t, root, "--seed"))
	})

	t.Run("falls_back_to_command_help", func(t *testing.T) {
		root := newRoot()
		_, err := InitializeWithOptions(root, testFS(), Options{})
		require.NoError(t, err)

		assert.Contains(t, runHelp(t, root, "plan"), "plan things")
	})

	t.Run("markdown_renderer", func(t *testing.T) {
		root := newRoot()
		_, err := InitializeWithOptions(root, testFS(), Options{Renderer: &MarkdownRenderer{Width: 40}})
		require.NoError(t, err)

		out := runHelp(t, root, "isolation")
		assert.Contains(t, out, "Isolation")
		assert.Contains(t, out, "Every test starts clean.")
	})

	t.Run("no_topics", func(t *testing.T) {
		root := newRoot()
		_, err := InitializeWithOptions(root, fstest.MapFS{}, Options{})
		require.NoError(t, err)

		assert.Contains(t, runHelp(t, root, "topics"), "No help topics available.")
	})
}

func TestPlainRendererPassesThrough(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# raw", r.Render("# raw", ".md"))

	m := &MarkdownRenderer{}
	assert.Equal(t, "plain text", m.Render("plain text", ".txt"))
}
