package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "explorer_cli",
		Short: "Offline tooling for IR explorer runs",
		Long: `Offline tooling for IR explorer runs.

Examples:
  explorer_cli convert dump.json run.cbor.zst
  explorer_cli import-pg run.cbor.zst tk-msmarco
  explorer_cli validate --runs config/runs.yaml
  explorer_cli inspect --runs config/runs.yaml --run 0 --query 1001 --doc 42
  explorer_cli index-collection data/collection.tsv`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newConvertCmd(),
		newImportCmd(),
		newValidateCmd(),
		newInspectCmd(),
		newIndexCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
