// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/ghsum/ghsum/internal/domain"
	"github.com/ghsum/ghsum/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// fetchTimeout bounds the upstream calls of a single aggregation so one slow
// GitHub request cannot hang a web request indefinitely.
const fetchTimeout = 15 * time.Second

// maxTopLanguages caps the language ranking shown to the user.
const maxTopLanguages = 5

// Aggregator is the use case for summarizing a GitHub profile.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	timeout time.Duration
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		timeout: fetchTimeout,
	}
}

// Aggregate performs the main business logic. It canonicalizes the submitted
// URL or handle, fetches the user record and repository list concurrently,
// and folds the repositories into the star total and language ranking.
// A failure in either fetch aborts the whole aggregation; no partial
// summaries are returned.
func (a *Aggregator) Aggregate(ctx context.Context, rawInput string) (*domain.ProfileSummary, error) {
	username, err := domain.ParseHandle(rawInput)
	if err != nil {
		return nil, err
	}
	a.logger.Printf("Usecase: Starting aggregation for %s...", username)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var summary *domain.ProfileSummary
	var repos []domain.RepositoryRecord

	// Fetch the user record and the repository list concurrently; the first
	// error cancels the sibling call.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		summary, err = a.fetcher.FetchProfile(egCtx, username)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = a.fetcher.FetchRepositories(egCtx, username)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	a.logger.Println("Usecase: All data fetched successfully.")

	languageCounts := make(map[string]int)
	for _, repo := range repos {
		summary.TotalStars += repo.Stars
		// Repositories without a primary language still count toward stars
		// but are excluded from the ranking.
		if repo.Language != "" {
			languageCounts[repo.Language]++
		}
	}
	summary.TopLanguages = rankLanguages(languageCounts)

	a.logger.Println("Usecase: Aggregation complete.")
	return summary, nil
}

// rankLanguages orders languages by repository count descending, ties broken
// by language name, capped at maxTopLanguages entries.
func rankLanguages(counts map[string]int) []domain.LanguageCount {
	ranked := make([]domain.LanguageCount, 0, len(counts))
	for language, repositories := range counts {
		ranked = append(ranked, domain.LanguageCount{Language: language, Repositories: repositories})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Repositories != ranked[j].Repositories {
			return ranked[i].Repositories > ranked[j].Repositories
		}
		return ranked[i].Language < ranked[j].Language
	})
	if len(ranked) > maxTopLanguages {
		ranked = ranked[:maxTopLanguages]
	}
	return ranked
}
