package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/driver"
	"sable/internal/fqname"
	"sable/internal/ir"
	"sable/internal/project"
	"sable/internal/source"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags] [path]",
	Short: "Lower sable sources to IR",
	Long: `Lower parses sable sources and rewrites them to IR.
Path may be a file or a directory; without one the project root from
sable.toml is used, falling back to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLower,
}

func init() {
	lowerCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	lowerCmd.Flags().Bool("dump", false, "print the lowered IR to stdout")
	lowerCmd.Flags().String("filter", "", "only dump declarations whose qualified name matches a glob (e.g. 'Point.*', '**.copy')")
	lowerCmd.Flags().Int("jobs", 0, "parallel workers for directory runs (0 = GOMAXPROCS)")
	lowerCmd.Flags().String("cache", "", "disk cache for directory runs (on|off, default from sable.toml)")
	lowerCmd.Flags().String("ui", "auto", "interactive progress for directory runs (auto|on|off)")
}

func runLower(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	dump, _ := cmd.Flags().GetBool("dump")
	filterGlob, _ := cmd.Flags().GetString("filter")
	jobs, _ := cmd.Flags().GetInt("jobs")
	cacheFlag, _ := cmd.Flags().GetString("cache")
	uiFlag, _ := cmd.Flags().GetString("ui")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var filter *fqname.Pattern
	if filterGlob != "" {
		filter, err = fqname.CompilePattern(filterGlob)
		if err != nil {
			return fmt.Errorf("invalid --filter pattern: %w", err)
		}
		dump = true
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		fileSet, res, err := driver.Lower(target, maxDiagnostics)
		if err != nil {
			return err
		}
		if err := printDiagnostics(cmd, format, fileSet, res.Bag); err != nil {
			return err
		}
		if dump && res.Unit != nil {
			if err := ir.DumpFiltered(os.Stdout, res.Unit, filter); err != nil {
				return err
			}
		}
		if res.Bag.HasErrors() {
			os.Exit(1)
		}
		return nil
	}

	opts := driver.Options{MaxDiagnostics: maxDiagnostics, Jobs: jobs}

	// The manifest supplies defaults; flags win.
	manifest, manifestDir, haveManifest, err := loadManifest(target)
	if err != nil {
		return err
	}
	if haveManifest {
		if len(args) == 0 {
			target, err = project.ResolveRoot(manifestDir, manifest.Root)
			if err != nil {
				return err
			}
		}
		if manifest.MaxErrors > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
			opts.MaxDiagnostics = int(manifest.MaxErrors)
		}
	}
	cacheOn := haveManifest && manifest.Cache
	switch cacheFlag {
	case "on":
		cacheOn = true
	case "off":
		cacheOn = false
	case "":
	default:
		return fmt.Errorf("invalid --cache value %q (expected on or off)", cacheFlag)
	}
	if filter != nil {
		// Cached entries carry pre-rendered dumps that cannot be filtered.
		cacheOn = false
	}
	if cacheOn {
		cacheDir := ""
		if haveManifest && manifest.CacheDir != "" {
			cacheDir = filepath.Join(manifestDir, manifest.CacheDir)
		}
		cache, err := driver.OpenDiskCache("sable", cacheDir)
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if shouldUseTUI(mode) {
		fileSet, results, err = runLowerWithUI(cmd.Context(), target, opts)
	} else {
		fileSet, results, err = driver.LowerDir(cmd.Context(), target, opts)
	}
	if err != nil {
		return err
	}

	merged := diag.NewBag(opts.MaxDiagnostics)
	failed := false
	for _, res := range results {
		merged.Merge(res.Bag)
		if res.Bag.HasErrors() {
			failed = true
		}
		if dump {
			if res.Cached {
				fmt.Fprint(os.Stdout, res.Dump)
			} else if res.Unit != nil {
				if err := ir.DumpFiltered(os.Stdout, res.Unit, filter); err != nil {
					return err
				}
			}
		}
	}
	merged.Sort()
	if err := printDiagnostics(cmd, format, fileSet, merged); err != nil {
		return err
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func runLowerWithUI(ctx context.Context, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return lowerWithUI(ctx, "lowering "+dir, files, dir, opts)
}

func printDiagnostics(cmd *cobra.Command, format string, fileSet *source.FileSet, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	switch format {
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		opts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		}
		diagfmt.Pretty(os.Stderr, bag, fileSet, opts)
		return nil
	}
}

func loadManifest(startDir string) (project.Manifest, string, bool, error) {
	path, ok, err := project.FindManifest(startDir)
	if err != nil || !ok {
		return project.Manifest{}, "", false, err
	}
	manifest, err := project.Load(path)
	if err != nil {
		return project.Manifest{}, "", false, err
	}
	return manifest, filepath.Dir(path), true, nil
}
