package alphafold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tikz/alphasense/errs"
	"github.com/tikz/alphasense/input"
)

// Files names the files of the AlphaFold Protein Structure Database, e.g.
// AF-P04637-F1-model_v4.pdb and AF-P04637-F1-predicted_aligned_error_v4.json.
type Files struct {
	Fragment int
	Version  int
}

// DefaultFiles names the current single fragment release.
var DefaultFiles = Files{Fragment: 1, Version: 4}

func (f Files) prefix(accession string) string {
	return fmt.Sprintf("AF-%s-F%d", accession, f.Fragment)
}

// Model returns the structure file name of accession.
func (f Files) Model(accession string) string {
	return fmt.Sprintf("%s-model_v%d.pdb", f.prefix(accession), f.Version)
}

// PAE returns the aligned error file name of accession.
func (f Files) PAE(accession string) string {
	return fmt.Sprintf("%s-predicted_aligned_error_v%d.json", f.prefix(accession), f.Version)
}

// Loader reads AlphaFold models by UniProt accession from local directories.
type Loader struct {
	Files  Files
	PDBDir string
	PAEDir string

	// Workers bounds the number of models LoadAll reads at once. Zero or
	// less means one.
	Workers int

	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Paths returns the structure and PAE paths of accession. A gzip compressed
// file is used when only that one exists.
func (l *Loader) Paths(accession string) (pdbPath, paePath string) {
	return local(filepath.Join(l.PDBDir, l.Files.Model(accession))),
		local(filepath.Join(l.PAEDir, l.Files.PAE(accession)))
}

func local(path string) string {
	if !input.Exists(path) && input.Exists(path+".gz") {
		return path + ".gz"
	}
	return path
}

// Load reads the model of accession.
func (l *Loader) Load(accession string) (*Model, error) {
	pdbPath, paePath := l.Paths(accession)
	m, err := Load(pdbPath, paePath, WithLogger(l.logger()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", accession, err)
	}
	return m, nil
}

// LoadAll reads the models of accessions concurrently. Models that fail to
// load are reported per accession and do not stop the others; the returned
// error is only set when ctx is done first.
func (l *Loader) LoadAll(ctx context.Context, accessions []string) (map[string]*Model, map[string]error, error) {
	var (
		mu     sync.Mutex
		models = make(map[string]*Model)
		failed = make(map[string]error)
		seen   = make(map[string]bool)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, l.Workers))

	for _, acc := range accessions {
		if seen[acc] {
			continue
		}
		seen[acc] = true

		acc := acc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			m, err := l.Load(acc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				level := slog.LevelWarn
				if errors.Is(err, errs.ErrNotFound) {
					level = slog.LevelInfo
				}
				l.logger().Log(ctx, level, "skipping model", slog.String("accession", acc), slog.Any("err", err))
				failed[acc] = err
				return nil
			}
			models[acc] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return models, failed, nil
}
