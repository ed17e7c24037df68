package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imp-refactor/imp-refactor/internal/adapter"
	"github.com/imp-refactor/imp-refactor/internal/config"
	"github.com/imp-refactor/imp-refactor/internal/controller"
	"github.com/imp-refactor/imp-refactor/internal/domain"
	"github.com/imp-refactor/imp-refactor/internal/logging"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

var (
	excludeFlags      []string
	noDefaultExcludes bool
	renameFlags       []string
	registryNameFlag  string
	gitRefFlag        string
	jsonFlag          bool
	verboseFlag       int

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "imp-refactor",
	Short: "Detect and repair stale registry.* references in Nix configuration",
	Long: `imp-refactor scans Nix configuration for references into a
project-defined registry attribute set, flags references that no longer
resolve against the registry's current shape, and can rewrite the
unambiguous ones in place.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&excludeFlags, "exclude", "x", nil,
		"exclude files matching a glob pattern (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&noDefaultExcludes, "no-default-excludes", false,
		"disable the built-in excludes (.git, result, node_modules, ...)")
	rootCmd.PersistentFlags().StringArrayVar(&renameFlags, "rename", nil,
		"declare a moved registry path as old=new (repeatable)")
	rootCmd.PersistentFlags().StringVar(&registryNameFlag, "registry-name", "",
		"root identifier the registry is bound to (default from config, else \"registry\")")
	rootCmd.PersistentFlags().StringVar(&gitRefFlag, "git-ref", "",
		"evaluate the registry as of this git ref instead of the working tree")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false,
		"detect: emit machine-readable JSON instead of formatted text; other subcommands only log as JSON")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"increase log verbosity (-v, -vv)")

	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newRegistryCmd())
	rootCmd.AddCommand(newScanCmd())
}

// setup loads project configuration and the ambient logger before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded
	if registryNameFlag != "" {
		cfg.RegistryName = registryNameFlag
	}

	level := logging.LevelFromVerbosity(verboseFlag)
	if verboseFlag == 0 {
		level = logging.LevelFromString(cfg.Logging.Level)
	}

	if jsonFlag {
		logger = logging.NewJSON(cmd.ErrOrStderr(), level)
	} else {
		tty := false
		if f, ok := cmd.ErrOrStderr().(*os.File); ok {
			tty = controller.IsTTY(f)
		}
		logger = logging.New(cmd.ErrOrStderr(), level, tty)
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return controller.ExitFatal
	}
	return lastExitCode
}

// lastExitCode carries a subcommand's non-error exit code (ExitClean /
// ExitBroken) out to main, since cobra's RunE only distinguishes
// success from error.
var lastExitCode int

func parseRenames(specs []string) (m.RenameMap, error) {
	entries := make([]m.RenameEntry, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return m.RenameMap{}, fmt.Errorf("invalid --rename %q: expected old=new", spec)
		}
		entries = append(entries, m.RenameEntry{
			Old: m.ParseDottedPath(parts[0]),
			New: m.ParseDottedPath(parts[1]),
		})
	}
	return m.NewRenameMap(entries...), nil
}

func buildOptions(roots []string) (domain.Options, error) {
	renames, err := parseRenames(renameFlags)
	if err != nil {
		return domain.Options{}, err
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	excludes := append(append([]string{}, cfg.Exclude...), excludeFlags...)
	return domain.Options{
		Roots:        roots,
		Exclude:      domain.NewExcludeSet(excludes, !noDefaultExcludes && !cfg.NoDefaultExcludes),
		RegistryName: cfg.RegistryName,
		Renames:      renames,
	}, nil
}

func newWorkflow() domain.Workflow {
	return domain.NewWorkflow(
		adapter.NewLocalSourceFS(),
		adapter.NewLangFileAdapter(),
		adapter.NewEvaluatorAdapter(cfg.EvaluatorCommand, cfg.RegistryFile, gitRefFlag),
	)
}

func newController(cmd *cobra.Command, interactive bool) *controller.Controller {
	ui := controller.NewUI(cmd, interactive)
	return controller.New(newWorkflow(), ui, adapter.NewReportStore())
}
