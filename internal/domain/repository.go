// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"regexp"
	"strings"
)

// Repository holds the pull statistics for a single registry repository.
// It is the core domain entity of this application.
type Repository struct {
	Name      string `json:"name"`
	PullCount int    `json:"pull_count"`
	Overview  string `json:"overview"`
}

var overviewHeading = regexp.MustCompile(`# ([^\n]+)\n`)

// ExtractOverview returns the text of the first "# Title" line in a repository description.
// It returns an empty string when the description is empty or has no such line.
func ExtractOverview(description string) string {
	if description == "" {
		return ""
	}
	match := overviewHeading.FindStringSubmatch(description)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
