package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"patchlint/internal/lint"
	"patchlint/internal/patch"
	"patchlint/internal/report"
	"patchlint/internal/rules"
	"patchlint/internal/spelling"
	"patchlint/internal/vcs"
	"patchlint/pkg/config"
)

var version = "dev"

// exitCode is decided by the pass results; cobra errors map to 2.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "patchlint [flags] [patch.diff | file ...]",
	Short: "Style checker for source code patches",
	Long: `patchlint scans unified diffs or whole files against a catalog of
style heuristics and reports CHECK/WARN/ERROR diagnostics, optionally
writing auto-fixed output next to the input.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.String("config", "", "path to a TOML configuration file")
	f.Bool("file", false, "treat inputs as whole source files, not patches")
	f.Bool("staged", false, "check the staged git diff")
	f.Int("max-line-length", 80, "long line threshold in columns")
	f.Int("tab-width", 8, "tab expansion width")
	f.String("min-severity", "check", "report only diagnostics at or above this level (check|warn|error)")
	f.StringSlice("ignore", nil, "diagnostic type tags to suppress")
	f.Bool("strict", false, "enable the strict rule subset")
	f.Bool("terse", false, "print only the summary line")
	f.String("color", "auto", "colorize output (auto|on|off)")
	f.Bool("fix", false, "write fixed output to <input>"+report.FixSuffix)
	f.Bool("fix-diff", false, "print applied fixes as a unified diff")
	f.Bool("warn-exit", false, "exit non-zero on warnings too")
	f.String("dictionary", "", "path to a misspelling dictionary file")
	f.String("owners-root", "", "tree root for OWNERS coverage checks")
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	minSev, err := lint.ParseSeverity(cfg.MinSeverity)
	if err != nil {
		return err
	}

	colorize, err := colorMode(cfg.Color)
	if err != nil {
		return err
	}

	wholeFile, _ := cmd.Flags().GetBool("file")
	staged, _ := cmd.Flags().GetBool("staged")

	git := &vcs.Git{}
	var gitLog vcs.Log
	if git.Available() {
		gitLog = git
	} else {
		fmt.Fprintln(os.Stderr, "patchlint: no git repository found, commit-reference checks run format-only")
	}

	var dict *spelling.Dictionary
	if cfg.Dictionary != "" {
		dict, err = spelling.Load(cfg.Dictionary)
		if err != nil {
			return err
		}
	}

	engine := lint.NewEngine(cfg, rules.Default(rules.Deps{Log: gitLog, Dictionary: dict}))
	if cfg.OwnersRoot != "" {
		engine.WithOwnership(&vcs.OwnersFiles{Root: cfg.OwnersRoot})
	}
	printer := report.NewPrinter(os.Stdout, colorize, cfg.Terse, minSev)

	inputs, err := gatherInputs(args, staged, git)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		var parsed *patch.Patch
		if wholeFile {
			parsed = patch.ParseFile(in.name, in.content)
		} else {
			parsed = patch.Parse(in.content)
		}

		res := engine.Check(in.name, parsed, wholeFile)
		printer.Print(res.Diagnostics)
		printer.Summary(res.Counts, res.LinesChecked)

		if res.FixApplied {
			if cfg.FixDiff {
				if err := report.FixDiff(os.Stdout, in.name, parsed.Raw, res.FixLines, res.FixedIndexes); err != nil {
					return err
				}
			}
			if cfg.Fix && in.fromFile {
				out, err := report.WriteFix(in.name, res.FixLines)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "fixed output written to %s\n", out)
			}
		}

		if res.Counts.Errors > 0 || (cfg.WarnExit && res.Counts.Warnings > 0) {
			exitCode = 1
		}
	}

	return nil
}

// buildConfig loads the config file (when given) and lets explicitly set
// flags override it. Configuration failures are fatal before any line is
// processed.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()

	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Changed("max-line-length") {
		cfg.MaxLineLength, _ = f.GetInt("max-line-length")
	}
	if f.Changed("tab-width") {
		cfg.TabWidth, _ = f.GetInt("tab-width")
	}
	if f.Changed("min-severity") {
		cfg.MinSeverity, _ = f.GetString("min-severity")
	}
	if f.Changed("ignore") {
		cfg.Ignore, _ = f.GetStringSlice("ignore")
	}
	if f.Changed("strict") {
		cfg.Strict, _ = f.GetBool("strict")
	}
	if f.Changed("terse") {
		cfg.Terse, _ = f.GetBool("terse")
	}
	if f.Changed("color") {
		cfg.Color, _ = f.GetString("color")
	}
	if f.Changed("fix") {
		cfg.Fix, _ = f.GetBool("fix")
	}
	if f.Changed("fix-diff") {
		cfg.FixDiff, _ = f.GetBool("fix-diff")
	}
	if f.Changed("warn-exit") {
		cfg.WarnExit, _ = f.GetBool("warn-exit")
	}
	if f.Changed("dictionary") {
		cfg.Dictionary, _ = f.GetString("dictionary")
	}
	if f.Changed("owners-root") {
		cfg.OwnersRoot, _ = f.GetString("owners-root")
	}

	if cfg.MaxLineLength <= 0 {
		return nil, fmt.Errorf("max-line-length must be positive, got %d", cfg.MaxLineLength)
	}
	if cfg.TabWidth <= 0 {
		return nil, fmt.Errorf("tab-width must be positive, got %d", cfg.TabWidth)
	}

	return cfg, nil
}

func colorMode(mode string) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		// fatih/color keys its global NoColor off tty and NO_COLOR.
		return !color.NoColor, nil
	}
	return false, fmt.Errorf("unknown color mode %q (want auto, on or off)", mode)
}

type input struct {
	name     string
	content  string
	fromFile bool
}

// gatherInputs resolves the positional arguments: the staged diff, stdin
// for "-" or no arguments, file paths otherwise. A nonexistent input file
// is fatal.
func gatherInputs(args []string, staged bool, git *vcs.Git) ([]input, error) {
	if staged {
		diffText, err := git.StagedDiff()
		if err != nil {
			return nil, err
		}
		return []input{{name: "staged changes", content: diffText}}, nil
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []input{{name: "-", content: string(data)}}, nil
	}

	var inputs []input
	for _, arg := range args {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		inputs = append(inputs, input{name: arg, content: string(data), fromFile: true})
	}
	return inputs, nil
}
