// Package portfolio holds the small transforms the pages apply to API
// records: ordering, filtering, form state and pagination arithmetic.
package portfolio

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Zachkp/folio/internal/media"
	"github.com/Zachkp/folio/internal/models"
)

const (
	cardTechLimit = 5
	cardTagLimit  = 4
)

// SortProjects returns a copy of projects with featured entries first, each
// group ordered newest created_at first
func SortProjects(projects []models.Project) []models.Project {
	sorted := slices.Clone(projects)
	slices.SortStableFunc(sorted, func(a, b models.Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return sorted
}

// FilterByTag keeps projects carrying tag. An empty tag keeps everything.
func FilterByTag(projects []models.Project, tag string) []models.Project {
	if tag == "" {
		return projects
	}
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if slices.Contains(p.Tags, tag) {
			out = append(out, p)
		}
	}
	return out
}

// SplitComma splits a comma-separated form value into trimmed, non-empty items
func SplitComma(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinComma is the inverse of SplitComma for display in a text input
func JoinComma(items []string) string {
	return strings.Join(items, ", ")
}

// Initials returns the first two characters of name in upper case, used when
// the profile has no avatar
func Initials(name string) string {
	if utf8.RuneCountInString(name) <= 2 {
		return strings.ToUpper(name)
	}
	runes := []rune(name)
	return strings.ToUpper(string(runes[:2]))
}

// Link is a labelled outbound link
type Link struct {
	Href  string
	Label string
}

// PrimaryLink picks the card's call to action: the live demo when there is
// one, otherwise the source. ok is false when the project has neither.
func PrimaryLink(p models.Project) (link Link, ok bool) {
	switch {
	case p.LiveURL != "":
		return Link{Href: p.LiveURL, Label: "Live demo"}, true
	case p.GitHubURL != "":
		return Link{Href: p.GitHubURL, Label: "Source"}, true
	}
	return Link{}, false
}

// Media is an asset path plus how to embed it
type Media struct {
	Path  string
	Video bool
}

// PrimaryMedia is the first gallery asset, falling back to the cover image.
// Only gallery assets can be videos.
func PrimaryMedia(p models.Project) (Media, bool) {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return Media{Path: p.Images[0], Video: media.IsVideo(p.Images[0])}, true
	}
	if p.CoverImageURL != "" {
		return Media{Path: p.CoverImageURL}, true
	}
	return Media{}, false
}

// CardTech is the tech stack trimmed for a project card
func CardTech(p models.Project) []string {
	return head(p.TechStack, cardTechLimit)
}

// CardTags is the tag list trimmed for a project card
func CardTags(p models.Project) []string {
	return head(p.Tags, cardTagLimit)
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
