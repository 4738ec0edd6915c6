package explorer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/DjordjeVuckovic/ir-explorer/internal/artifact"
	"github.com/DjordjeVuckovic/ir-explorer/internal/collection"
	"github.com/DjordjeVuckovic/ir-explorer/internal/domain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/explain"
	"github.com/DjordjeVuckovic/ir-explorer/internal/judgment"
	"github.com/DjordjeVuckovic/ir-explorer/internal/kernel"
	"github.com/DjordjeVuckovic/ir-explorer/internal/runconfig"
	"github.com/DjordjeVuckovic/ir-explorer/internal/token"
	"golang.org/x/sync/errgroup"
)

// Options selects the backends a run file is loaded into.
type Options struct {
	// Artifacts must also implement artifact.Loader.
	Artifacts artifact.Store
	// LocalArtifacts resolves secondary outputs relative to the run file.
	// Database backends take them verbatim as run keys.
	LocalArtifacts bool
	// Collection replaces the per-run collection files when set.
	Collection collection.Source
	Tokenizer  token.Tokenizer
}

// loadCaches share parsed files between runs that reference the same path.
type loadCaches struct {
	judgments *collection.Cache[*judgment.Set]
	queries   *collection.Cache[*collection.QuerySet]
	passages  *collection.Cache[collection.Passages]
}

// Load reads every run of f in parallel. The first failure cancels the
// remaining runs and is returned.
func Load(ctx context.Context, f *runconfig.File, opts Options) (*Explorer, error) {
	loader, ok := opts.Artifacts.(artifact.Loader)
	if !ok {
		return nil, fmt.Errorf("artifact store %T cannot load runs", opts.Artifacts)
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = token.NewWordTokenizer()
	}

	caches := loadCaches{
		judgments: collection.NewCache[*judgment.Set](),
		queries:   collection.NewCache[*collection.QuerySet](),
		passages:  collection.NewCache[collection.Passages](),
	}

	start := time.Now()
	runs := make([]*runState, len(f.Runs))

	g, gctx := errgroup.WithContext(ctx)
	for i := range f.Runs {
		g.Go(func() error {
			rs, err := loadRun(gctx, f, i, loader, opts, caches)
			if err != nil {
				return err
			}
			runs[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Runs loaded",
		"runs", len(runs),
		"qrels_files", caches.judgments.Len(),
		"collections", caches.passages.Len(),
		"duration", time.Since(start))

	return newExplorer(runs, opts.Artifacts, explain.NewAssembler(opts.Tokenizer)), nil
}

func loadRun(ctx context.Context, f *runconfig.File, i int, loader artifact.Loader, opts Options, caches loadCaches) (*runState, error) {
	rc := f.Runs[i]
	run := &domain.Run{Index: i, Kind: rc.Kind, Info: rc.Info}
	key := run.Key()

	source := rc.SecondaryOutput
	if opts.LocalArtifacts {
		source = f.Resolve(source)
	}
	if err := loader.Load(ctx, key, source); err != nil {
		return nil, fmt.Errorf("load artifacts of run %d: %w", i, err)
	}

	model, err := opts.Artifacts.Model(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load model of run %d: %w", i, err)
	}
	if err := checkModel(i, run, model); err != nil {
		return nil, err
	}
	run.Model = model
	if run.Kind.Dense() {
		if mix, ok := model.Vector(domain.WeightLogLenMix); ok {
			run.Info.LogLenMix = mix
		}
	}

	bank, err := kernel.NewBank(run.Info.KernelMus, run.Info.Sigma)
	if err != nil {
		return nil, apperr.NewConfiguration(i, "kernels_mus", err.Error())
	}

	qrelsPath := f.Resolve(rc.Qrels)
	judgments, err := caches.judgments.Get(qrelsPath, func() (*judgment.Set, error) {
		return judgment.LoadFromFile(qrelsPath)
	})
	if err != nil {
		return nil, fmt.Errorf("load judgments of run %d: %w", i, err)
	}

	queriesPath, clustersPath := f.Resolve(rc.Queries), f.Resolve(rc.ClusterStats)
	queries, err := caches.queries.Get(queriesPath+"|"+clustersPath, func() (*collection.QuerySet, error) {
		return collection.LoadQuerySet(queriesPath, clustersPath)
	})
	if err != nil {
		return nil, fmt.Errorf("load queries of run %d: %w", i, err)
	}

	docs := opts.Collection
	if docs == nil {
		if rc.Collection == "" {
			return nil, apperr.NewConfiguration(i, "collection", "must be set without an external collection source")
		}
		collectionPath := f.Resolve(rc.Collection)
		passages, err := caches.passages.Get(collectionPath, func() (collection.Passages, error) {
			return collection.LoadTSV(ctx, collectionPath, f.MaxDocCharLength)
		})
		if err != nil {
			return nil, fmt.Errorf("load collection of run %d: %w", i, err)
		}
		docs = passages
	}

	evaluated, err := opts.Artifacts.Queries(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("list queries of run %d: %w", i, err)
	}

	rs := &runState{
		run:       run,
		bank:      bank,
		judgments: judgments,
		queries:   queries,
		docs:      docs,
		evaluated: make(map[string]struct{}, len(evaluated)),
	}
	for _, qid := range evaluated {
		rs.evaluated[qid] = struct{}{}
	}

	slog.Info("Run loaded",
		"run", key,
		"name", run.Info.Name,
		"score_type", run.Kind,
		"kernels", bank.Size(),
		"queries", queries.Len(),
		"judged_queries", judgments.QueryCount(),
		"evaluated_queries", len(rs.evaluated))
	return rs, nil
}

// checkModel enforces that every weight vector the score type uses is
// present and has one weight per kernel.
func checkModel(i int, run *domain.Run, model *domain.ModelWeights) error {
	k := len(run.Info.KernelMus)
	for _, group := range domain.RequiredGroups(run.Kind) {
		weights, ok := model.Vector(group)
		if !ok {
			return apperr.NewConfiguration(i, "secondary-output", fmt.Sprintf("missing weight group %q", group))
		}
		if len(weights) != k {
			return apperr.NewConfiguration(i, "kernels_mus",
				fmt.Sprintf("%d kernel centers but %s has %d weights", k, group, len(weights)))
		}
	}
	return nil
}
