package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/arr-ai/dbc/textenc"
)

var fmtCheck bool
var fmtDiff bool
var fmtJobs int

var fmtCommand = cli.Command{
	Name:      "fmt",
	Aliases:   []string{"dbcfmt"},
	Usage:     "Reformat DBC files in place",
	ArgsUsage: "[file or glob...]",
	Action:    fmtFiles,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "check",
			Usage:       "list unformatted files and fail if there are any",
			Destination: &fmtCheck,
		},
		cli.BoolFlag{
			Name:        "diff, d",
			Usage:       "print diffs instead of rewriting files",
			Destination: &fmtDiff,
		},
		cli.IntFlag{
			Name:        "jobs, j",
			Usage:       "number of files formatted concurrently (default from config)",
			Destination: &fmtJobs,
		},
	},
}

type fmtMode struct {
	check bool
	diff  bool
}

type fmtResult struct {
	path    string
	changed bool
	diff    string
}

func fmtFiles(c *cli.Context) error {
	patterns := []string(c.Args())
	if len(patterns) == 0 {
		patterns = config.Fmt.Include
	}
	files, err := expandPatterns(patterns, config.Fmt.Exclude)
	if err != nil {
		return err
	}
	jobs := fmtJobs
	if jobs <= 0 {
		jobs = config.Fmt.Jobs
	}
	results, err := formatAll(context.Background(), files, fmtMode{check: fmtCheck, diff: fmtDiff}, jobs)
	if err != nil {
		return err
	}

	unformatted := 0
	for _, r := range results {
		if !r.changed {
			continue
		}
		unformatted++
		switch {
		case fmtDiff:
			fmt.Fprint(stdout, r.diff)
		case fmtCheck:
			fmt.Fprintln(stdout, r.path)
		}
	}
	if fmtCheck && unformatted > 0 {
		return fmt.Errorf("%d of %d files are not formatted", unformatted, len(files))
	}
	return nil
}

// expandPatterns resolves files and doublestar globs, dropping paths that
// match any exclude pattern. Each pattern must match at least one file.
func expandPatterns(patterns, exclude []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, path := range matches {
			if seen[path] || excluded(path, exclude) {
				continue
			}
			seen[path] = true
			files = append(files, path)
		}
	}
	return files, nil
}

func excluded(path string, exclude []string) bool {
	for _, pattern := range exclude {
		if match, _ := doublestar.PathMatch(pattern, path); match {
			return true
		}
	}
	return false
}

func formatAll(ctx context.Context, files []string, mode fmtMode, jobs int) ([]fmtResult, error) {
	results := make([]fmtResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := formatFile(path, mode)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// formatFile renders a file canonically, rewriting it in its original
// encoding unless mode asks only to report.
func formatFile(path string, mode fmtMode) (fmtResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmtResult{}, err
	}
	d, text, enc, err := decodeDocument(data, path)
	if err != nil {
		return fmtResult{}, err
	}
	formatted := d.String()
	r := fmtResult{path: path, changed: formatted != text}
	if !r.changed {
		return r, nil
	}
	if mode.diff {
		r.diff, err = difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(text),
			B:        difflib.SplitLines(formatted),
			FromFile: path + ".orig",
			ToFile:   path,
			Context:  3,
		})
		if err != nil {
			return r, err
		}
	}
	if mode.check || mode.diff {
		return r, nil
	}

	out, err := textenc.Encode(formatted, enc)
	if err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return r, err
	}
	if err := os.WriteFile(path, append(textenc.BOM(data), out...), info.Mode().Perm()); err != nil {
		return r, err
	}
	logrus.WithField("file", path).Info("formatted")
	return r, nil
}
