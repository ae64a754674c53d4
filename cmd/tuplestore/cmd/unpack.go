package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// unpackCmd represents the unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack <tuple-hex>",
	Short: "Decode a hex-encoded tuple key back into its elements",
	Long: `Unpack decodes a hex-encoded tuple key and prints each element in
typed-prefix form.

Example:
  tuplestore unpack 02616c706861000c2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("tuple hex: %w", err)
		}
		t, err := tuple.Unpack(raw)
		if err != nil {
			return err
		}
		cmd.Println(formatTuple(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}
