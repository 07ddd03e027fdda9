package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ashes-predictions/ashes-leaderboard/pkg/models"
	"github.com/ashes-predictions/ashes-leaderboard/pkg/scraper"
)

// Source says where the leaderboard reads the series and stats documents
// from: a base URL when RemoteURL is set, otherwise the local directory.
type Source struct {
	Dir       string
	RemoteURL string
}

// Documents holds the two pipeline outputs the leaderboard needs
type Documents struct {
	Series *models.SeriesDocument
	Stats  *models.AggregatedStats
}

// FetchDocuments loads both documents concurrently and waits for both
func FetchDocuments(ctx context.Context, src Source, seriesName, statsName string) (*Documents, error) {
	docs := &Documents{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var series models.SeriesDocument
		if err := src.load(ctx, seriesName, &series); err != nil {
			return err
		}
		docs.Series = &series
		return nil
	})
	g.Go(func() error {
		var agg models.AggregatedStats
		if err := src.load(ctx, statsName, &agg); err != nil {
			return err
		}
		docs.Stats = &agg
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s Source) load(ctx context.Context, name string, v any) error {
	if s.RemoteURL == "" {
		return ReadJSON(filepath.Join(s.Dir, name), v)
	}
	return fetchJSON(ctx, strings.TrimSuffix(s.RemoteURL, "/")+"/"+name, v)
}

func fetchJSON(ctx context.Context, url string, v any) error {
	log.Debug("Fetching document", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := scraper.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return nil
}
