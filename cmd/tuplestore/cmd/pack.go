package cmd

import (
	"encoding/hex"

	"github.com/spf13/cobra"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// packCmd represents the pack command
var packCmd = &cobra.Command{
	Use:   "pack <element>...",
	Short: "Encode typed-prefix elements into a hex-encoded tuple key",
	Long: `Pack prints the hex encoding of the tuple formed by the given
typed-prefix elements (s: text, i: int, u: uint, b: bool, x: hex blob,
uuid: UUID, null).

Example:
  tuplestore pack s:alpha i:42`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTuple(args)
		if err != nil {
			return err
		}
		cmd.Println(hex.EncodeToString(tuple.Pack(nil, t)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
}
