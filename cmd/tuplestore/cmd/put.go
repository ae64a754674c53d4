package cmd

import (
	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <collection> <element>... -- <value>",
	Short: "Put a record into a collection",
	Long: `Put stores value under the tuple key formed by the given typed-prefix
elements (s: text, i: int, u: uint, b: bool, x: hex blob, uuid: UUID).

Example:
  tuplestore put widgets s:alpha -- "hello world"`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := args[0]
		value := args[len(args)-1]
		keyArgs := args[1 : len(args)-1]

		t, err := parseTuple(keyArgs)
		if err != nil {
			return err
		}

		kv, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if err := kv.Put(collection, t, []byte(value)); err != nil {
			return err
		}

		cmd.Printf("put %s/%s\n", collection, formatTuple(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
