// Package cli implements the pipetag command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ib-77/pipetag/internal/config"
	"github.com/ib-77/pipetag/internal/log"
)

const description = `
pipetag

Encode and decode 64-bit correlation ids, verify query results
and watch client stores until they are drained.
`

type rootCommand struct {
	cmd    *cobra.Command
	fs     afero.Fs          // filesystem abstraction
	clock  clockwork.Clock   // drives the drain poller
	ctx    context.Context   // context for parallel operations
	config config.Config     // parsed file, env and flags
	logger log.Logger        // log to stderr
	bound  map[string]string // config key -> flag name
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(ctx context.Context, stdout, stderr io.Writer, fs afero.Fs, clock clockwork.Clock) *rootCommand {
	root := &rootCommand{
		fs:     fs,
		clock:  clock,
		ctx:    ctx,
		logger: log.NewNopLogger(),
		bound: map[string]string{
			"log.level":  "log-level",
			"log.format": "log-format",
		},
	}

	root.cmd = &cobra.Command{
		Use:           path.Base(os.Args[0]), // name of the binary
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return cmd.Help()
		},
	}

	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	flags := root.cmd.PersistentFlags()
	flags.SortFlags = true
	flags.StringP("config", "c", "", "path to a YAML config file")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "console", "console or json")

	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return root.init(cmd)
	}

	root.cmd.AddCommand(
		encodeCommand(root),
		decodeCommand(root),
		verifyCommand(root),
		drainCommand(root),
	)

	return root
}

// bind registers a sub-command flag as the source of a config key.
func (root *rootCommand) bind(key, flag string) {
	root.bound[key] = flag
}

func (root *rootCommand) init(cmd *cobra.Command) error {
	flags := map[string]*pflag.Flag{}
	for key, name := range root.bound {
		if f := cmd.Flags().Lookup(name); f != nil {
			flags[key] = f
		}
	}

	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(root.fs, file, flags)
	if err != nil {
		return err
	}
	root.config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := log.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	root.logger = log.NewLogger(cmd.ErrOrStderr(), level, format)
	if envs := config.Environ(); len(envs) > 0 {
		root.logger.Debugf("environment overrides: %v", envs)
	}
	return nil
}

// Execute runs the command and returns the process exit code.
func (root *rootCommand) Execute() int {
	err := root.cmd.ExecuteContext(root.ctx)
	_ = root.logger.Sync()
	if err != nil {
		fmt.Fprintf(root.cmd.ErrOrStderr(), "Error: %s\n", err)
		return 1
	}
	return 0
}
