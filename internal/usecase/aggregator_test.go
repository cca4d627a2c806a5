package usecase

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ghsum/ghsum/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchProfile(ctx context.Context, username string) (*domain.ProfileSummary, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileSummary), args.Error(1)
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, username string) ([]domain.RepositoryRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepositoryRecord), args.Error(1)
}

// baseProfile returns the profile record the mock gateway hands back before
// repository data is folded in.
func baseProfile() *domain.ProfileSummary {
	return &domain.ProfileSummary{
		Username:     "octocat",
		Name:         "The Octocat",
		Followers:    42,
		Following:    7,
		PublicRepos:  3,
		CreatedAt:    time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
		LastActiveAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		mockRepos      []domain.RepositoryRecord
		mockProfileErr error
		mockReposErr   error
		expectedStars  int
		expectedLangs  []domain.LanguageCount
		expectedErr    error
	}{
		{
			name:  "happy path - stars summed, empty-language repo excluded from ranking",
			input: "https://github.com/octocat",
			mockRepos: []domain.RepositoryRecord{
				{Stars: 5, Language: "Go"},
				{Stars: 3, Language: "Go"},
				{Stars: 10, Language: ""},
			},
			expectedStars: 18,
			expectedLangs: []domain.LanguageCount{{Language: "Go", Repositories: 2}},
		},
		{
			name:          "zero repositories - zero stars and empty ranking",
			input:         "octocat",
			mockRepos:     []domain.RepositoryRecord{},
			expectedStars: 0,
			expectedLangs: []domain.LanguageCount{},
		},
		{
			name:  "ties broken by language name",
			input: "octocat",
			mockRepos: []domain.RepositoryRecord{
				{Stars: 1, Language: "Go"},
				{Stars: 1, Language: "C"},
				{Stars: 0, Language: "Rust"},
				{Stars: 0, Language: "Rust"},
			},
			expectedStars: 2,
			expectedLangs: []domain.LanguageCount{
				{Language: "Rust", Repositories: 2},
				{Language: "C", Repositories: 1},
				{Language: "Go", Repositories: 1},
			},
		},
		{
			name:  "ranking capped at five languages",
			input: "octocat",
			mockRepos: []domain.RepositoryRecord{
				{Language: "Go"}, {Language: "Go"}, {Language: "Go"},
				{Language: "C"}, {Language: "C"},
				{Language: "Rust"}, {Language: "Rust"},
				{Language: "Python"},
				{Language: "Ruby"},
				{Language: "Zig"},
			},
			expectedStars: 0,
			expectedLangs: []domain.LanguageCount{
				{Language: "Go", Repositories: 3},
				{Language: "C", Repositories: 2},
				{Language: "Rust", Repositories: 2},
				{Language: "Python", Repositories: 1},
				{Language: "Ruby", Repositories: 1},
			},
		},
		{
			name:           "profile fetch failure aborts aggregation",
			input:          "octocat",
			mockProfileErr: domain.ErrProfileNotFound,
			expectedErr:    domain.ErrProfileNotFound,
		},
		{
			name:         "repository fetch failure aborts aggregation",
			input:        "octocat",
			mockReposErr: domain.ErrUpstream,
			expectedErr:  domain.ErrUpstream,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			if tc.mockProfileErr != nil {
				fetcher.On("FetchProfile", mock.Anything, "octocat").Return(nil, tc.mockProfileErr)
			} else {
				fetcher.On("FetchProfile", mock.Anything, "octocat").Return(baseProfile(), nil)
			}
			if tc.mockReposErr != nil {
				fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(nil, tc.mockReposErr)
			} else {
				fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(tc.mockRepos, nil)
			}

			aggregator := NewAggregator(fetcher, log.New(io.Discard, "", 0))
			summary, err := aggregator.Aggregate(context.Background(), tc.input)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, summary)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "octocat", summary.Username)
			assert.Equal(t, tc.expectedStars, summary.TotalStars)
			assert.Equal(t, tc.expectedLangs, summary.TopLanguages)
		})
	}
}

func TestAggregator_Aggregate_InvalidInput(t *testing.T) {
	fetcher := new(mockFetcher)
	aggregator := NewAggregator(fetcher, log.New(io.Discard, "", 0))

	summary, err := aggregator.Aggregate(context.Background(), "https://gitlab.com/octocat")

	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	assert.Nil(t, summary)
	// The gateway must not be touched when validation fails.
	fetcher.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
	fetcher.AssertNotCalled(t, "FetchRepositories", mock.Anything, mock.Anything)
}

func TestAggregator_Aggregate_Idempotent(t *testing.T) {
	fetcher := new(mockFetcher)
	repos := []domain.RepositoryRecord{
		{Stars: 5, Language: "Go"},
		{Stars: 3, Language: "C"},
	}
	// Each call hands back a fresh profile record, mirroring a real fetch.
	fetcher.On("FetchProfile", mock.Anything, "octocat").Return(baseProfile(), nil).Once()
	fetcher.On("FetchProfile", mock.Anything, "octocat").Return(baseProfile(), nil).Once()
	fetcher.On("FetchRepositories", mock.Anything, "octocat").Return(repos, nil).Twice()

	aggregator := NewAggregator(fetcher, log.New(io.Discard, "", 0))

	first, err := aggregator.Aggregate(context.Background(), "octocat")
	assert.NoError(t, err)
	second, err := aggregator.Aggregate(context.Background(), "octocat")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	fetcher.AssertExpectations(t)
}
