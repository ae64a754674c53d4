/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ssargent/tuplestore/pkg/di"
	"github.com/ssargent/tuplestore/pkg/store"

	"github.com/spf13/cobra"
)

type storeCtxKey struct{}

// container is injected by main via SetContainer before Execute runs.
var container *di.Container

// SetContainer wires the dependency injection container built in main into
// the commands that need it (currently just serve).
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tuplestore",
	Short: "tuplestore - an order-preserving tuple key/value store",
	Long: `tuplestore is an embeddable key-value store whose keys are encoded
with a FoundationDB-style tuple layer: packing a tuple of typed elements
preserves their component-wise order as plain byte comparison.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		kvStore, err := store.Open(store.Config{DataDir: dataDir})
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), storeCtxKey{}, kvStore))
		return nil
	},
}

// storeFromContext retrieves the Store opened by PersistentPreRunE.
func storeFromContext(cmd *cobra.Command) (*store.Store, error) {
	kv, ok := cmd.Context().Value(storeCtxKey{}).(*store.Store)
	if !ok {
		return nil, fmt.Errorf("store not found in command context")
	}
	return kv, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the store")
}
