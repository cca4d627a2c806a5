// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/ghsum/ghsum/internal/domain"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// repoPageSize is the pagination page size for repository listing.
const repoPageSize = 100

// Fetcher defines the behavior of a gateway for fetching profile information
// from GitHub.
type Fetcher interface {
	// FetchProfile retrieves the user record for a username. The returned
	// summary carries the profile fields only; stars and languages are
	// folded in by the caller from FetchRepositories.
	FetchProfile(ctx context.Context, username string) (*domain.ProfileSummary, error)
	// FetchRepositories retrieves the full repository list for a username,
	// following pagination until exhausted.
	FetchRepositories(ctx context.Context, username string) ([]domain.RepositoryRecord, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	// Cap the rate-limit sleep at one second: anything longer is reported
	// back as a rate-limit error instead of stalling the request.
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(time.Second, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.ProfileSummary, error) {
	g.logger.Printf("[1/2] Fetching user record for %s...", username)
	user, _, err := g.client.Users.Get(ctx, username)
	if err != nil {
		return nil, mapAPIError(err)
	}
	g.logger.Println("Completed fetching user record.")
	return &domain.ProfileSummary{
		Username:     user.GetLogin(),
		Name:         user.GetName(),
		Followers:    user.GetFollowers(),
		Following:    user.GetFollowing(),
		PublicRepos:  user.GetPublicRepos(),
		CreatedAt:    user.GetCreatedAt().Time,
		LastActiveAt: user.GetUpdatedAt().Time,
	}, nil
}

func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.RepositoryRecord, error) {
	g.logger.Printf("[2/2] Fetching repositories for %s...", username)
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: repoPageSize},
	}
	records := []domain.RepositoryRecord{}
	for {
		repos, resp, err := g.client.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, mapAPIError(err)
		}
		for _, repo := range repos {
			records = append(records, domain.RepositoryRecord{
				Stars:    repo.GetStargazersCount(),
				Language: repo.GetLanguage(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Completed fetching %d repositories.", len(records))
	return records, nil
}

// mapAPIError translates go-github errors into the domain error taxonomy.
// go-github already recognizes quota-exhausted 403/429 responses, so a plain
// 403 left over here is an authorization failure.
func mapAPIError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		retryAfter := time.Until(rateErr.Rate.Reset.Time)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return &domain.RateLimitedError{RetryAfter: retryAfter}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var retryAfter time.Duration
		if abuseErr.RetryAfter != nil {
			retryAfter = *abuseErr.RetryAfter
		}
		return &domain.RateLimitedError{RetryAfter: retryAfter}
	}

	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", apiErr.Message, domain.ErrProfileNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %w", apiErr.Message, domain.ErrAuth)
		}
		return fmt.Errorf("unexpected status %d: %w", apiErr.Response.StatusCode, domain.ErrUpstream)
	}

	// Network failures, timeouts, and anything else go-github passed through.
	return fmt.Errorf("%v: %w", err, domain.ErrUpstream)
}
