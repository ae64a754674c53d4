package cmd

import (
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <collection> <element>...",
	Short: "Get a record from a collection",
	Long: `Get prints the value stored under the tuple key formed by the given
typed-prefix elements.

Example:
  tuplestore get widgets s:alpha`,
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

		value, err := kv.Get(collection, t)
		if err != nil {
			return err
		}

		cmd.Printf("%s\n", string(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
