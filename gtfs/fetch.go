package gtfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Fetch reads a GTFS zip from an HTTP(S) URL or a local path. A leading ~ in
// a path is expanded to the home directory.
func Fetch(ctx context.Context, pathOrURL string) ([]byte, error) {
	if pathOrURL == "" {
		return nil, fmt.Errorf("empty GTFS location")
	}

	if !strings.HasPrefix(pathOrURL, "http://") && !strings.HasPrefix(pathOrURL, "https://") {
		path, err := homedir.Expand(pathOrURL)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pathOrURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, pathOrURL)
	}
	return io.ReadAll(resp.Body)
}
