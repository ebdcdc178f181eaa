package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sable/internal/diag"
	"sable/internal/source"
)

// LowerDir lowers every *.sb file under dir. Files run in parallel with
// one Lowerer and one Context per file; result indices are stable so no
// locking is needed.
func LowerDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		if opts.Progress != nil {
			close(opts.Progress)
		}
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		if opts.Progress != nil {
			close(opts.Progress)
		}
		return fileSet, nil, nil
	}

	// Loading is sequential: FileSet mutation is not thread safe.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.NewError(diag.IOLoadFile, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				emit(opts.Progress, path, StageParse, StatusError)
				return nil
			}

			fileID := fileIDs[path]
			if cached, ok := cacheLookup(opts.Cache, fileSet.Get(fileID)); ok {
				results[i] = cached
				emit(opts.Progress, path, StageCache, StatusDone)
				return nil
			}

			emit(opts.Progress, path, StageParse, StatusWorking)
			res := LowerFile(fileSet, fileID, opts.maxDiagnostics())
			cacheStore(opts.Cache, fileSet.Get(fileID), &res)
			results[i] = res
			if res.Bag.HasErrors() {
				emit(opts.Progress, path, StageLower, StatusError)
			} else {
				emit(opts.Progress, path, StageLower, StatusDone)
			}
			return nil
		})
	}

	err = g.Wait()
	if opts.Progress != nil {
		close(opts.Progress)
	}
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
