package cli

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/ib-77/pipetag/pkg/cid"
)

func encodeCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Pack client, query, shard and application ids into one correlation id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := root.config.Identity
			id, err := cid.Encode(identity.ClientID, identity.QueryID, identity.ShardID, identity.AppID)
			if err != nil {
				return err
			}

			hex, err := cmd.Flags().GetBool("hex")
			if err != nil {
				return err
			}
			root.logger.Debugf("encoded %s", id.Describe())
			if hex {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "0x%016X\n", id.Uint64())
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Int64("client", 0, "client id, 0-65535")
	flags.Int64("query", 0, "query id, 0-255")
	flags.Int64("shard", 0, "shard id, 0-255")
	flags.Int64("app", 0, "application id, 0-4294967295")
	flags.Bool("hex", false, "print the id in hexadecimal")
	root.bind("identity.client", "client")
	root.bind("identity.query", "query")
	root.bind("identity.shard", "shard")
	root.bind("identity.app", "app")

	return cmd
}

type decoded struct {
	ID         cid.ID `json:"id"`
	ClientID   uint16 `json:"clientId"`
	ClientHigh uint8  `json:"clientIdHigh"`
	ClientLow  uint8  `json:"clientIdLow"`
	QueryID    uint8  `json:"queryId"`
	ShardID    uint8  `json:"shardId"`
	AppID      uint32 `json:"appId"`
}

func decode(id cid.ID) decoded {
	f := id.Fields()
	return decoded{
		ID:         id,
		ClientID:   f.ClientID,
		ClientHigh: f.ClientHigh(),
		ClientLow:  f.ClientLow(),
		QueryID:    f.QueryID,
		ShardID:    f.ShardID,
		AppID:      f.AppID,
	}
}

func (d decoded) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\n", d.ID)
	fmt.Fprintf(&b, "clientId (2 bytes): %d (high byte %d, low byte %d)\n", d.ClientID, d.ClientHigh, d.ClientLow)
	fmt.Fprintf(&b, "queryId (1 byte): %d\n", d.QueryID)
	fmt.Fprintf(&b, "shardId (1 byte): %d\n", d.ShardID)
	fmt.Fprintf(&b, "appId (4 bytes): %d\n", d.AppID)
	return b.String()
}

func decodeCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode ID...",
		Short: "Split correlation ids, decimal or 0x-prefixed hexadecimal, into their fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			ids := make([]cid.ID, 0, len(args))
			for _, arg := range args {
				id, err := cid.Parse(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			out := cmd.OutOrStdout()
			for i, id := range ids {
				d := decode(id)
				if asJSON {
					line, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(d)
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintf(out, "%s\n", line); err != nil {
						return err
					}
					continue
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				if _, err := fmt.Fprint(out, d.text()); err != nil {
					return err
				}
			}
			root.logger.Debugf("decoded %d ids", len(ids))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "print one JSON object per id")
	return cmd
}
