// Package driver orchestrates lexing, parsing and lowering over files
// and directories, with optional parallelism and a content-addressed
// disk cache for lowered dumps.
package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/lexer"
	"sable/internal/lower"
	"sable/internal/parser"
	"sable/internal/source"
)

// SourceExt is the file extension of sable sources.
const SourceExt = ".sb"

// Options configures a driver run.
type Options struct {
	// MaxDiagnostics caps each file's bag.
	MaxDiagnostics int
	// Jobs bounds parallelism for directory runs; 0 picks GOMAXPROCS.
	Jobs int
	// Cache enables the disk cache for directory runs.
	Cache *DiskCache
	// Progress receives per-file events during directory runs. The
	// driver closes it when the run finishes.
	Progress chan Event
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 256
	}
	return o.MaxDiagnostics
}

// FileResult is the outcome of lowering one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Unit   *ir.Unit
	Bag    *diag.Bag
	// Cached is set when the result came from the disk cache; Unit is
	// nil in that case and Dump holds the rendered IR.
	Cached bool
	Dump   string
}

// ListSourceFiles returns all *.sb files under dir, sorted for
// deterministic order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Lower loads and lowers a single file.
func Lower(path string, maxDiagnostics int) (*source.FileSet, FileResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, FileResult{}, err
	}
	return fileSet, LowerFile(fileSet, fileID, maxDiagnostics), nil
}

// LowerFile lexes, parses and lowers one already-loaded file. A
// non-positive maxDiagnostics falls back to the default cap.
func LowerFile(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int) FileResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(Options{MaxDiagnostics: maxDiagnostics}.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(fileSet, lx, parser.Options{Reporter: reporter})

	ctx := lower.NewContext()
	lowerer := lower.New(ctx, reporter)
	unit := lowerer.LowerUnit(file.Path, res.File)

	bag.Sort()
	return FileResult{
		Path:   file.Path,
		FileID: fileID,
		Unit:   unit,
		Bag:    bag,
	}
}
