package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <collection> <element>...",
	Short: "Delete a record from a collection",
	Long: `Delete removes the record at the tuple key formed by the given
typed-prefix elements. Deleting an absent key is not an error.

Example:
  tuplestore delete widgets s:alpha`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection := args[0]
		t, err := parseTuple(args[1:])
		if err != nil {
			return err
		}

		kv, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		if err := kv.Delete(collection, t); err != nil {
			return err
		}

		cmd.Printf("deleted %s/%s\n", collection, formatTuple(t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
