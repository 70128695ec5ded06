package models

import (
	"time"
)

// DefaultDescription replaces a missing or empty repository description.
const DefaultDescription = "No description available"

// Project is a repository prepared for display on the portfolio grid.
type Project struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	Homepage     *string   `json:"homepage"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	Language     *string   `json:"language"`
	Topics       []string  `json:"topics"`
	Technologies []string  `json:"technologies,omitempty"`
	Updated      time.Time `json:"updated"`
	IsFeatured   bool      `json:"is_featured"`
}

// NewProject maps a GitHub repository into a Project. featured is decided
// by the caller once per fetch and is never recomputed.
func NewProject(repo *GitHubRepository, featured bool) *Project {
	description := DefaultDescription
	if repo.Description != nil && *repo.Description != "" {
		description = *repo.Description
	}

	topics := make([]string, len(repo.Topics))
	copy(topics, repo.Topics)

	// An unparsable timestamp sorts as the oldest possible update.
	updated, _ := time.Parse(time.RFC3339, repo.UpdatedAt)

	return &Project{
		Name:        repo.Name,
		Description: description,
		URL:         repo.HTMLURL,
		Homepage:    repo.Homepage,
		Stars:       repo.StargazersCount,
		Forks:       repo.ForksCount,
		Language:    repo.Language,
		Topics:      topics,
		Updated:     updated,
		IsFeatured:  featured,
	}
}

// HasHomepage reports whether the project links to a live deployment.
func (p *Project) HasHomepage() bool {
	return p.Homepage != nil && *p.Homepage != ""
}

// Tags returns the topics to show on the card, falling back to the
// technologies listed in the inclusion document.
func (p *Project) Tags() []string {
	if len(p.Topics) > 0 {
		return p.Topics
	}
	return p.Technologies
}
