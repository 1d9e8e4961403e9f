// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"

	"github.com/naka-gawa/dockerhub-pulls/internal/domain"
	"github.com/naka-gawa/dockerhub-pulls/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Collector is the use case for collecting pull statistics of an organization.
// It orchestrates the listing and per-repository fetching.
type Collector struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
}

// NewCollector creates a new Collector instance.
// A concurrency below 2 fetches repository details strictly one at a time.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger, concurrency int) *Collector {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Collector{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Collect lists every repository of org and fetches its details.
// The result keeps the listing order.
func (c *Collector) Collect(ctx context.Context, org string) ([]*domain.Repository, error) {
	c.logger.Println("Usecase: Starting collection...")

	summaries, err := c.fetcher.ListRepositories(ctx, org)
	if err != nil {
		return nil, err
	}

	c.logger.Printf("[3/3] Fetching details of %d repositories...\n", len(summaries))
	repositories := make([]*domain.Repository, len(summaries))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i, summary := range summaries {
		i, summary := i, summary
		eg.Go(func() error {
			repo, err := c.fetcher.FetchRepository(egCtx, org, summary.Name)
			if err != nil {
				return err
			}
			repositories[i] = repo
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	c.logger.Println("Usecase: Collection complete.")
	return repositories, nil
}

// PullCounts returns the pull count of every repository of org keyed by repository name.
func (c *Collector) PullCounts(ctx context.Context, org string) (map[string]int, error) {
	repositories, err := c.Collect(ctx, org)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(repositories))
	for _, repo := range repositories {
		counts[repo.Name] = repo.PullCount
	}
	return counts, nil
}
