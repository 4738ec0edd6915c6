package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DjordjeVuckovic/ir-explorer/internal/backend"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection/es"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explorer"
	"github.com/DjordjeVuckovic/ir-explorer/internal/runconfig"
	"github.com/spf13/cobra"
)

// loadRuns loads a run file with the backends selected by the environment.
func loadRuns(ctx context.Context, path string) (*explorer.Explorer, *runconfig.File, func(), error) {
	f, err := runconfig.LoadFromFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := backend.LoadEnv()
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := backend.Open(ctx, cfg, f.MaxDocCharLength)
	if err != nil {
		return nil, nil, nil, err
	}
	e, err := explorer.Load(ctx, f, b.Options)
	if err != nil {
		b.Close()
		return nil, nil, nil, err
	}
	return e, f, b.Close, nil
}

func newValidateCmd() *cobra.Command {
	var runsPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a run file and check every run against its artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, closeFn, err := loadRuns(cmd.Context(), runsPath)
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			for i, info := range e.RunInfos() {
				key := fmt.Sprint(i)
				clusters, err := e.Clusters(key)
				if err != nil {
					return err
				}
				queries := 0
				for _, c := range clusters {
					queries += len(c.Queries)
				}
				fmt.Fprintf(out, "run %d %q (%s): %d kernels, %d clusters, %d evaluated queries\n",
					i, info.Name, info.ScoreType, len(info.KernelMus), len(clusters), queries)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&runsPath, "runs", "", "Path to the run file")
	_ = cmd.MarkFlagRequired("runs")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var (
		runsPath string
		run      int
		qid      string
		did      string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the explanation of one query, or one of its documents, as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, closeFn, err := loadRuns(cmd.Context(), runsPath)
			if err != nil {
				return err
			}
			defer closeFn()

			var v any
			key := fmt.Sprint(run)
			if did == "" {
				v, err = e.QueryDocuments(cmd.Context(), key, qid)
			} else {
				v, err = e.DocumentInfo(cmd.Context(), key, qid, did)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}

	cmd.Flags().StringVar(&runsPath, "runs", "", "Path to the run file")
	cmd.Flags().IntVar(&run, "run", 0, "Run index")
	cmd.Flags().StringVar(&qid, "query", "", "Query id")
	cmd.Flags().StringVar(&did, "doc", "", "Document id; all documents of the query when empty")
	_ = cmd.MarkFlagRequired("runs")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newIndexCmd() *cobra.Command {
	var maxChars int

	cmd := &cobra.Command{
		Use:   "index-collection COLLECTION.tsv",
		Short: "Bulk index a collection file into Elasticsearch",
		Long: `Bulk index a collection file into Elasticsearch.
Connection settings are read from ES_ADDRESSES, ES_INDEX_NAME, ES_USERNAME and ES_PASSWORD.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			esCfg, err := backend.LoadESEnv()
			if err != nil {
				return err
			}

			passages, err := collection.LoadTSV(cmd.Context(), args[0], maxChars)
			if err != nil {
				return err
			}

			indexer, err := es.NewIndexer(cmd.Context(), *esCfg)
			if err != nil {
				return err
			}
			if err := indexer.IndexPassages(cmd.Context(), passages); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d passages into %s\n", len(passages), esCfg.IndexName)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxChars, "max-chars", collection.DefaultMaxDocChars, "Truncate passages to this many characters")
	return cmd
}
