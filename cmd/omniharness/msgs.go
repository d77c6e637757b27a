package omniharness

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort           = "Inspect the packager's test isolation harness"
	MsgFactsShort          = "Inspect system facts fixtures"
	MsgFactsListShort      = "List the embedded facts fixtures"
	MsgFactsShowShort      = "Show a mocked facts tree"
	MsgConfigShort         = "Inspect harness configuration"
	MsgConfigDefaultsShort = "Print the documented configuration defaults"
	MsgConfigShowShort     = "Print the effective configuration"
	MsgPlanShort           = "Show the selection and order for a manifest"
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"

	MsgSeedFormat   = "Randomized with seed %d\n"
	MsgNoCases      = "No cases selected."
	MsgSkippedTitle = "Skipped:"
	MsgSkippedItem  = "  %s (%s)\n"
	MsgJUnitWritten = "Wrote %s\n"

	MsgErrFormat     = "invalid --format: %w"
	MsgErrSetFlag    = "invalid --set %q: expected key=value"
	MsgErrJUnitWrite = "failed to write junit report: %w"

	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml"
	MsgFlagPlatform = "Platform to mock"
	MsgFlagVersion  = "Platform version to mock (default: newest fixture)"
	MsgFlagPath     = "Facts file to load instead of an embedded fixture"
	MsgFlagSet      = "Override a fact, as dotted.path=value (repeatable)"
	MsgFlagFile     = "Configuration file to load over the defaults (TOML or YAML)"
	MsgFlagSeed     = "Shuffle seed (0 picks a fresh one)"
	MsgFlagHost     = "Platform identifier to select for (default: this host)"
	MsgFlagOrdering = "Ordering: random or declared"
	MsgFlagJUnit    = "Also write the plan as JUnit XML to this file"
)

// Long descriptions and examples
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/facts-show-long.txt
	msgFactsShowLongRaw string
	MsgFactsShowLong    = strings.TrimSpace(msgFactsShowLongRaw)

	//go:embed msgs/facts-show-example.txt
	MsgFactsShowExample string

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	MsgPlanExample string
)
