package models

import "strings"

// SortDirection orders post listings by createdAt.
type SortDirection string

const (
	Descending SortDirection = "desc"
	Ascending  SortDirection = "asc"
)

// ParseSortDirection accepts the admin UI values ("newest", "oldest") as well as
// "desc"/"asc". Anything else falls back to newest first.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oldest", "asc", "ascending":
		return Ascending
	default:
		return Descending
	}
}

func (d SortDirection) SQL() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}
