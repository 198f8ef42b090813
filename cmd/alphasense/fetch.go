package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tikz/alphasense/errs"
)

func runFetch(cmd *cobra.Command, args []string) error {
	l, err := loader(cmd)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, l.Workers))

	missing := make([]bool, len(args))
	for i, acc := range args {
		i, acc := i, acc
		g.Go(func() error {
			err := l.Download(ctx, acc)
			if errors.Is(err, errs.ErrNotFound) {
				slog.Warn("not in the AlphaFold DB", slog.String("accession", acc))
				missing[i] = true
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var n int
	for _, m := range missing {
		if m {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d of %d accessions not found", n, len(args))
	}
	return nil
}
