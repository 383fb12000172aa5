package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ib-77/pipetag/internal/drain"
)

var errNotDrained = errors.New("stores still hold data")

func printSnapshot(w io.Writer, s drain.Snapshot) {
	if s.Drained() {
		fmt.Fprintln(w, "All stores are empty")
		return
	}
	for _, store := range s.NonEmpty {
		fmt.Fprintf(w, "Directory %s contains: %d items\n", store.Name, store.Entries)
	}
}

func drainCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Poll per-client stores until every one of them is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.config.Drain
			if cfg.Root == "" {
				return errors.New("--root is required")
			}

			once, err := cmd.Flags().GetBool("once")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			poller := drain.NewPoller(root.fs, cfg.Root,
				drain.WithClock(root.clock),
				drain.WithInterval(cfg.Interval),
				drain.WithLogger(root.logger),
				drain.OnSnapshot(func(s drain.Snapshot) { printSnapshot(out, s) }))

			if once {
				snapshot, err := poller.Poll(cmd.Context())
				if err != nil {
					return err
				}
				printSnapshot(out, snapshot)
				if !snapshot.Drained() {
					return errNotDrained
				}
				return nil
			}

			_, err = poller.Wait(cmd.Context())
			return err
		},
	}

	flags := cmd.Flags()
	flags.String("root", "", "directory holding one sub-directory per client store")
	flags.Duration("interval", time.Second, "poll interval")
	flags.Bool("once", false, "poll once and exit non-zero unless drained")
	root.bind("drain.root", "root")
	root.bind("drain.interval", "interval")

	return cmd
}
