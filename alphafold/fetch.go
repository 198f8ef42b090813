package alphafold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tikz/alphasense/http"
	"github.com/tikz/alphasense/input"
)

// BaseURL serves the AlphaFold Protein Structure Database files.
var BaseURL = "https://alphafold.ebi.ac.uk/files/"

// Download fetches the structure and PAE files of accession into the loader
// directories. Files already present, compressed or not, are kept.
func (l *Loader) Download(ctx context.Context, accession string) error {
	targets := []struct {
		dir, name string
	}{
		{l.PDBDir, l.Files.Model(accession)},
		{l.PAEDir, l.Files.PAE(accession)},
	}

	for _, t := range targets {
		path := filepath.Join(t.dir, t.name)
		if input.Exists(path) || input.Exists(path+".gz") {
			l.logger().Debug("already downloaded", slog.String("path", path))
			continue
		}

		body, err := http.Get(ctx, BaseURL+t.name)
		if err != nil {
			return fmt.Errorf("download %s: %w", t.name, err)
		}

		if err := os.MkdirAll(t.dir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return err
		}
		l.logger().Info("downloaded", slog.String("path", path), slog.Int("bytes", len(body)))
	}

	return nil
}
