package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/tuplestore/pkg/tuple"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <collection> [prefix-element]...",
	Short: "List every record in a collection whose key starts with a prefix",
	Long: `Scan lists every record in collection whose tuple key starts with
the given typed-prefix elements, in ascending key order. With no elements
it lists the whole collection.

Example:
  tuplestore scan widgets
  tuplestore scan widgets s:al`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := args[0]
		prefix, err := parseTuple(args[1:])
		if err != nil {
			return err
		}

		kv, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		it, err := kv.Scan(collection, prefix)
		if err != nil {
			return err
		}
		defer it.Close()

		collPrefix := tuple.Pack(nil, tuple.Tuple{tuple.Text(collection)})
		for it.Next() {
			t, ok, err := tuple.UnpackPrefixed(collPrefix, it.Key())
			if err != nil || !ok {
				continue
			}
			cmd.Printf("%s\t%s\n", formatTuple(t), string(it.Value()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
