package main

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	artifactpg "github.com/DjordjeVuckovic/ir-explorer/internal/artifact/pg"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert INPUT.json OUTPUT",
		Short: "Convert a JSON artifact dump into a CBOR archive",
		Long: `Convert a JSON artifact dump into a CBOR archive.
The output is zstd compressed when its name ends in .zst.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open dump: %w", err)
			}
			defer in.Close()

			a, err := artifact.ReadJSONArchive(in)
			if err != nil {
				return err
			}
			if err := artifact.WriteArchive(args[1], a); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d weight groups, %d queries, %d pairs\n",
				args[1], len(a.Model.Weights), len(a.QD), a.PairCount())
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var connStr string

	cmd := &cobra.Command{
		Use:   "import-pg ARCHIVE RUN_KEY",
		Short: "Import an artifact archive into Postgres under a run key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if connStr == "" {
				connStr = os.Getenv("PG_CONNECTION_STRING")
			}
			if connStr == "" {
				return fmt.Errorf("no connection string: set --conn or PG_CONNECTION_STRING")
			}

			a, err := artifact.ReadArchive(args[0])
			if err != nil {
				return err
			}

			pool, err := artifactpg.NewConnectionPool(cmd.Context(), artifactpg.PoolConfig{ConnStr: connStr})
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := artifactpg.NewStore(pool).Import(cmd.Context(), args[1], a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d pairs as %s\n", a.PairCount(), args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&connStr, "conn", "", "Postgres connection string (default $PG_CONNECTION_STRING)")
	return cmd
}
