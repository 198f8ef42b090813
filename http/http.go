// Package http fetches remote files.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tikz/alphasense/errs"
)

// Timeout bounds a single request.
var Timeout = 120 * time.Second

// Get downloads url and returns the body. A 404 response is reported as
// errs.ErrNotFound.
func Get(ctx context.Context, url string) ([]byte, error) {
	client := http.Client{
		Timeout: Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, url)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status code %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
