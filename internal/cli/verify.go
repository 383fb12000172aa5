package cli

import (
	"errors"

	"github.com/ccoveille/go-safecast"
	"github.com/spf13/cobra"

	"github.com/ib-77/pipetag/internal/oracle"
)

var errResultsMismatch = errors.New("results do not match the expected answers")

func verifyCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a results file against the expected answers of each query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.config.Verify
			if cfg.Results == "" || cfg.Expected == "" {
				return errors.New("both --results and --expected are required")
			}

			clientID, err := safecast.ToUint16(root.config.Identity.ClientID)
			if err != nil {
				return err
			}

			verifier := oracle.NewVerifier(root.fs, root.logger,
				oracle.WithClientID(clientID),
				oracle.WithWorkers(cfg.Workers))

			report, err := verifier.Verify(cmd.Context(), cfg.Results, cfg.Expected)
			if err != nil {
				return err
			}
			if err := report.Render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if !report.Passed() {
				return errResultsMismatch
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("results", "", "path to the emitted results, one line per result")
	flags.String("expected", "", "path to the expected answers in JSON")
	flags.Int64("client", 0, "client id the checks are tagged with")
	flags.Int("workers", 4, "number of concurrent checks")
	root.bind("verify.results", "results")
	root.bind("verify.expected", "expected")
	root.bind("verify.workers", "workers")
	root.bind("identity.client", "client")

	return cmd
}
