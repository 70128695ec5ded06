package models

import "time"

// Site is everything needed to render the portfolio page.
type Site struct {
	Username  string
	Filters   []FilterEntry
	Projects  []*Project
	Error     error
	FetchedAt time.Time
}
