package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/idex/internal/app"
	"github.com/kk-code-lab/idex/internal/config"
	"github.com/kk-code-lab/idex/internal/logger"
	"github.com/kk-code-lab/idex/internal/shellsetup"
)

// detectSetupShell is the --setup value meaning "work it out".
const detectSetupShell = "auto"

var parentShellDetector = shellsetup.DetectParentShellName

type options struct {
	configFile string
	setupShell string
	noLog      bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "idex [path]",
		Short: "Terminal tree file browser",
		Long: `idex shows a directory as an expandable tree and runs configurable
commands on the focused entry.

Key bindings, styles and commands live in $XDG_CONFIG_HOME/idex/conf.toml
(or ~/.config/idex/conf.toml).`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("setup") {
				// `--setup bash` leaves "bash" as a positional argument
				// because the flag value is optional.
				shell := opts.setupShell
				if shell == detectSetupShell {
					shell = ""
					if len(args) == 1 {
						shell = args[0]
					}
				}
				return shellsetup.PrintSetup(cmd.OutOrStdout(), shell, shellsetup.Config{DetectParent: parentShellDetector})
			}
			return run(opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/idex/conf.toml)")
	flags.StringVarP(&opts.setupShell, "setup", "s", "", "print the shell integration snippet (optionally for SHELL)")
	flags.Lookup("setup").NoOptDefVal = detectSetupShell
	flags.BoolVar(&opts.noLog, "no-log", false, "do not write the log file")

	return rootCmd
}

func run(opts options, args []string) error {
	if opts.noLog {
		logger.Disable()
	} else if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	}
	defer logger.Close()

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	logger.Info("config loaded from %s", cfg.Source)

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	app, err := apppkg.NewApplication(root, cfg)
	if err != nil {
		return fmt.Errorf("cannot start: %w", err)
	}
	app.Run()
	_ = app.Close()

	// Hand the chosen directory to the shell wrapper. The PID keeps
	// concurrent instances apart.
	if dir := app.ChangeDirPath(); dir != "" {
		resultFile := filepath.Join(os.TempDir(), shellsetup.ResultFileName(os.Getpid()))
		if err := os.WriteFile(resultFile, []byte(dir), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write result file: %v\n", err)
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return config.LoadFile(path)
}
