// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// ProfileSummary holds the aggregated statistics for a single GitHub profile.
// It is the core domain entity of this application, built fresh per request
// and never persisted.
type ProfileSummary struct {
	Username     string          `json:"username"`
	Name         string          `json:"name,omitempty"`
	Followers    int             `json:"followers"`
	Following    int             `json:"following"`
	PublicRepos  int             `json:"public_repos"`
	CreatedAt    time.Time       `json:"created_at"`
	LastActiveAt time.Time       `json:"last_active_at"`
	TotalStars   int             `json:"total_stars"`
	TopLanguages []LanguageCount `json:"top_languages"`
}

// LanguageCount is one entry of the top-languages ranking: a primary
// language and the number of repositories it is attributed to.
type LanguageCount struct {
	Language     string `json:"language"`
	Repositories int    `json:"repositories"`
}

// RepositoryRecord is the per-repository slice of data needed to build a
// ProfileSummary. It is transient: folded into the summary and discarded.
type RepositoryRecord struct {
	Stars    int
	Language string
}
