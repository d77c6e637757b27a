package omniharness

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/omniharness/internal/version"
	"github.com/arthur-debert/omniharness/pkg/cobrax/topics"
	"github.com/arthur-debert/omniharness/pkg/config"
	"github.com/arthur-debert/omniharness/pkg/facts"
	"github.com/arthur-debert/omniharness/pkg/logging"
	"github.com/arthur-debert/omniharness/pkg/selection"
	"github.com/arthur-debert/omniharness/pkg/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed topics
var topicsFS embed.FS

// usageTemplate is cobra's default with bold section headers
const usageTemplate = `{{boldUpper "usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "aliases"}}:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "examples"}}:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "commands"}}:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "omniharness",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.Get().Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(newFactsCmd(&format))
	rootCmd.AddCommand(newConfigCmd(&format))
	rootCmd.AddCommand(newPlanCmd(&format))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if source, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   &topics.MarkdownRenderer{},
		}
		if _, err := topics.InitializeWithOptions(rootCmd, source, opts); err != nil {
			logger := logging.GetLogger("cli")
			logger.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func newFactsCmd(format *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: MsgFactsShort,
	}
	cmd.AddCommand(newFactsListCmd(format))
	cmd.AddCommand(newFactsShowCmd(format))
	return cmd
}

func newFactsListCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgFactsListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(cmd, *format)
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}

			fixtures := facts.Platforms()
			switch f {
			case ui.FormatJSON:
				return writeJSON(cmd, fixtures)
			case ui.FormatYAML:
				return writeYAML(cmd, fixtures)
			}

			table := ui.Table{Header: []string{"PLATFORM", "VERSION", "LATEST"}}
			for _, fx := range fixtures {
				latest, _ := facts.LatestVersion(fx.Platform)
				mark := ""
				if latest == fx.Version {
					mark = "yes"
				}
				table.Rows = append(table.Rows, []string{fx.Platform, fx.Version, mark})
			}
			return table.Render(out(cmd), f == ui.FormatTerminal)
		},
	}
}

func newFactsShowCmd(format *string) *cobra.Command {
	var (
		desc facts.Descriptor
		sets []string
	)

	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgFactsShowShort,
		Long:    MsgFactsShowLong,
		Example: MsgFactsShowExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(cmd, *format)
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}

			overrides, err := parseSets(sets)
			if err != nil {
				return err
			}

			m, err := facts.Mock(desc, func(b *facts.Builder) {
				for _, o := range overrides {
					b.Set(o.Path, o.Value)
				}
			})
			if err != nil {
				return err
			}

			switch f {
			case ui.FormatJSON:
				return writeJSON(cmd, m)
			case ui.FormatYAML:
				return writeYAML(cmd, m)
			case ui.FormatTerminal:
				_, err := fmt.Fprint(out(cmd), ui.RenderMarkdown(factsMarkdown(m), 0))
				return err
			default:
				for _, leaf := range m.Flatten() {
					if _, err := fmt.Fprintf(out(cmd), "%s = %v\n", leaf.Path, leaf.Value); err != nil {
						return err
					}
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&desc.Platform, "platform", facts.DefaultDescriptor.Platform, MsgFlagPlatform)
	cmd.Flags().StringVar(&desc.Version, "version", "", MsgFlagVersion)
	cmd.Flags().StringVar(&desc.Path, "path", "", MsgFlagPath)
	cmd.Flags().StringArrayVar(&sets, "set", nil, MsgFlagSet)
	return cmd
}

// parseSets turns key=value flags into leaves. Booleans and integers are
// typed; everything else, versions included, stays a string.
func parseSets(sets []string) ([]facts.Leaf, error) {
	leaves := make([]facts.Leaf, 0, len(sets))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf(MsgErrSetFlag, s)
		}
		var typed any
		var value any = raw
		if err := yaml.Unmarshal([]byte(raw), &typed); err == nil {
			switch typed.(type) {
			case bool, int:
				value = typed
			}
		}
		leaves = append(leaves, facts.Leaf{Path: key, Value: value})
	}
	return leaves, nil
}

func factsMarkdown(m facts.Mash) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", m.Platform(), m.Version())
	for _, leaf := range m.Flatten() {
		fmt.Fprintf(&b, "- `%s`: %v\n", leaf.Path, leaf.Value)
	}
	return b.String()
}

func newConfigCmd(format *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefaultsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(out(cmd), config.DefaultsContent())
			return err
		},
	})

	var file string
	show := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(cmd, *format)
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}

			cfg, err := config.Load(file)
			if err != nil {
				return err
			}

			switch f {
			case ui.FormatJSON:
				return writeJSON(cmd, cfg)
			case ui.FormatYAML:
				return writeYAML(cmd, cfg)
			}
			data, err := cfg.Dump()
			if err != nil {
				return err
			}
			_, err = out(cmd).Write(data)
			return err
		},
	}
	show.Flags().StringVar(&file, "file", "", MsgFlagFile)
	cmd.AddCommand(show)

	return cmd
}

func newPlanCmd(format *string) *cobra.Command {
	var (
		seed     uint64
		platform string
		ordering string
		junit    string
	)

	cmd := &cobra.Command{
		Use:     "plan <manifest>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(cmd, *format)
			if err != nil {
				return fmt.Errorf(MsgErrFormat, err)
			}

			reg, err := selection.LoadManifest(args[0])
			if err != nil {
				return err
			}

			policy := selection.NewPolicy(platform, seed)
			switch ordering {
			case "random", "":
			case "declared":
				policy.Ordering = selection.Declared{}
			default:
				return fmt.Errorf("unknown ordering %q", ordering)
			}

			plan := reg.Plan(policy)

			if junit != "" {
				if err := writeJUnit(plan, junit); err != nil {
					return err
				}
				defer func() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), MsgJUnitWritten, junit)
				}()
			}

			switch f {
			case ui.FormatJSON:
				return writeJSON(cmd, plan)
			case ui.FormatYAML:
				return writeYAML(cmd, plan)
			}
			return renderPlan(cmd, plan, f == ui.FormatTerminal)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, MsgFlagSeed)
	cmd.Flags().StringVar(&platform, "platform", "", MsgFlagHost)
	cmd.Flags().StringVar(&ordering, "ordering", "random", MsgFlagOrdering)
	cmd.Flags().StringVar(&junit, "junit", "", MsgFlagJUnit)
	return cmd
}

func renderPlan(cmd *cobra.Command, plan selection.Plan, styled bool) error {
	w := out(cmd)

	if plan.Seed != 0 {
		fmt.Fprint(w, ui.Render("Seed", fmt.Sprintf(MsgSeedFormat, plan.Seed), styled))
	}

	if len(plan.Selected) == 0 {
		fmt.Fprintln(w, ui.Render("Warning", MsgNoCases, styled))
	} else {
		table := ui.Table{Header: []string{"#", "CASE", "TAGS"}}
		for i, c := range plan.Selected {
			table.Rows = append(table.Rows, []string{fmt.Sprint(i + 1), c.Name, strings.Join(c.Tags, ",")})
		}
		if err := table.Render(w, styled); err != nil {
			return err
		}
	}

	if len(plan.Skipped) > 0 {
		fmt.Fprintln(w, ui.Render("Header", MsgSkippedTitle, styled))
		for _, s := range plan.Skipped {
			fmt.Fprint(w, ui.Render("Skipped", fmt.Sprintf(MsgSkippedItem, s.Case.Name, s.Reason), styled))
		}
	}
	return nil
}

func writeJUnit(plan selection.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf(MsgErrJUnitWrite, err)
	}
	if err := plan.WriteJUnit(f, "omniharness"); err != nil {
		_ = f.Close()
		return fmt.Errorf(MsgErrJUnitWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf(MsgErrJUnitWrite, err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(out(cmd))
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(out(cmd))
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := out(cmd)
			fmt.Fprintf(w, "omniharness version %s\n", version.Version)
			fmt.Fprintf(w, "  commit: %s\n", version.Commit)
			fmt.Fprintf(w, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out(cmd))
			case "zsh":
				return cmd.Root().GenZshCompletion(out(cmd))
			case "fish":
				return cmd.Root().GenFishCompletion(out(cmd), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out(cmd))
			}
		},
	}
}
