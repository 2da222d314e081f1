package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"symdiff.dev/pkg/symdiff/internal/adapter"
	m "symdiff.dev/pkg/symdiff/internal/model"
	"symdiff.dev/pkg/symdiff/pkg"
)

// CompareArgs describes one comparison request.
type CompareArgs struct {
	OldPath  m.Path
	NewPath  m.Path
	Variants []string
	Threads  int
}

// MergeReportsArgs describes a reconciliation of previously saved
// per-variant reports. Labels, when given, override the variant label of
// the report at the same position.
type MergeReportsArgs struct {
	Reports []m.Path
	Labels  []string
}

// Workflow orchestrates the comparison pipeline: pair files, run one
// provider pass per variant (in parallel), classify, then reconcile the
// per-variant results into a single report.
type Workflow interface {
	Compare(ctx context.Context, args CompareArgs) (m.DiffResult, error)
	MergeReports(ctx context.Context, args MergeReportsArgs) (m.DiffResult, error)
}

type workflow struct {
	fs        adapter.SourceFS
	store     adapter.ReportStore
	providers []Provider
}

// NewWorkflow constructs a Workflow. Providers are consulted in order; the
// first one supporting a file's path diffs it.
func NewWorkflow(fs adapter.SourceFS, store adapter.ReportStore, providers ...Provider) Workflow {
	return &workflow{fs: fs, store: store, providers: providers}
}

func (w *workflow) Compare(ctx context.Context, args CompareArgs) (m.DiffResult, error) {
	pairs, mode, err := w.fs.PairFiles(ctx, args.OldPath, args.NewPath)
	if err != nil {
		slog.Error("failed to pair inputs", "old", args.OldPath, "new", args.NewPath, "error", err)
		return m.DiffResult{}, fmt.Errorf("pair inputs: %w", err)
	}

	base := m.DiffResult{
		OldPath: string(args.OldPath),
		NewPath: string(args.NewPath),
		Mode:    mode,
	}

	if len(args.Variants) == 0 {
		files, err := w.runPass(ctx, "", pairs)
		if err != nil {
			return m.DiffResult{}, err
		}

		base.Files = files
		base.Stats = ComputeStats(files)
		base.Variants = []string{}

		return base, nil
	}

	variantFiles, err := w.runVariantPasses(ctx, args, pairs)
	if err != nil {
		// A failed pass is fatal for the whole comparison: merging the
		// surviving subset would silently under-report risk.
		return m.DiffResult{}, err
	}

	results := make([]VariantResult, 0, len(args.Variants))

	for i, label := range args.Variants {
		result := base
		result.Files = variantFiles[i]
		result.Stats = ComputeStats(variantFiles[i])
		results = append(results, VariantResult{Label: label, Result: result})
	}

	return Merge(results), nil
}

// runVariantPasses executes one provider pass per variant, spilling each
// pass's classified file changes to disk so N concurrent passes over a
// large tree do not all stay resident, then materializes the forests in
// variant order once every pass has succeeded.
func (w *workflow) runVariantPasses(ctx context.Context, args CompareArgs, pairs []m.FilePair) ([][]m.FileChange, error) {
	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	spills := make([]pkg.FileSpill[m.FileChange], len(args.Variants))

	defer func() {
		for _, spill := range spills {
			if spill != nil {
				if err := spill.Close(); err != nil {
					slog.Warn("failed to close spill buffer", "path", spill.Path(), "error", err)
				}
			}
		}
	}()

	for i := range spills {
		file, err := w.fs.CreateTempFile(pkg.SpillFilePattern)
		if err != nil {
			return nil, fmt.Errorf("create spill buffer: %w", err)
		}

		spills[i] = pkg.NewFileSpill[m.FileChange](file)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, label := range args.Variants {
		spill := spills[i]
		variant := label

		group.Go(func() error {
			for _, pair := range pairs {
				fc, err := w.diffPair(groupCtx, variant, pair)
				if err != nil {
					return fmt.Errorf("variant %s: %w", variant, err)
				}

				if fc == nil {
					continue
				}

				if err := spill.Append(*fc); err != nil {
					return fmt.Errorf("variant %s: %w", variant, err)
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([][]m.FileChange, len(spills))

	for i, spill := range spills {
		files := make([]m.FileChange, 0, spill.Len())

		err := spill.Range(func(_ uint64, fc m.FileChange) error {
			files = append(files, fc)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("read pass results: %w", err)
		}

		out[i] = files
	}

	return out, nil
}

// runPass diffs every pair under a single variant label, classifying each
// resulting forest in place.
func (w *workflow) runPass(ctx context.Context, variant string, pairs []m.FilePair) ([]m.FileChange, error) {
	var files []m.FileChange

	for _, pair := range pairs {
		fc, err := w.diffPair(ctx, variant, pair)
		if err != nil {
			return nil, err
		}

		if fc != nil {
			files = append(files, *fc)
		}
	}

	return files, nil
}

func (w *workflow) diffPair(ctx context.Context, variant string, pair m.FilePair) (*m.FileChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	provider := w.providerFor(pair.RelPath)
	if provider == nil {
		slog.Debug("no provider for file, skipping", "path", pair.RelPath)
		return nil, nil
	}

	var (
		oldContent, newContent []byte
		err                    error
	)

	if pair.OldPath != "" {
		oldContent, err = w.fs.ReadFile(ctx, pair.OldPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", pair.OldPath, err)
		}
	}

	if pair.NewPath != "" {
		newContent, err = w.fs.ReadFile(ctx, pair.NewPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", pair.NewPath, err)
		}
	}

	changes, err := provider.Changes(ctx, variant, pair, oldContent, newContent)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", pair.RelPath, err)
	}

	if len(changes) == 0 {
		return nil, nil
	}

	ClassifyTree(changes)

	return &m.FileChange{Path: pair.RelPath, Changes: changes}, nil
}

func (w *workflow) providerFor(path string) Provider {
	for _, p := range w.providers {
		if p.Supports(path) {
			return p
		}
	}

	return nil
}

func (w *workflow) MergeReports(ctx context.Context, args MergeReportsArgs) (m.DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return m.DiffResult{}, err
	}

	results := make([]VariantResult, 0, len(args.Reports))

	for i, path := range args.Reports {
		result, err := w.store.LoadResult(path)
		if err != nil {
			return m.DiffResult{}, err
		}

		label, err := reportLabel(path, result, args.Labels, i)
		if err != nil {
			return m.DiffResult{}, err
		}

		results = append(results, VariantResult{Label: label, Result: result})
	}

	return Merge(results), nil
}

func reportLabel(path m.Path, result m.DiffResult, labels []string, index int) (string, error) {
	if index < len(labels) && labels[index] != "" {
		return labels[index], nil
	}

	if len(result.Variants) == 1 {
		return result.Variants[0], nil
	}

	return "", fmt.Errorf("report %s does not identify a single variant; pass --labels", path)
}
