package portfolio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/models"
)

func project(id int, featured bool, created string, tags ...string) models.Project {
	ts, err := time.Parse(time.DateOnly, created)
	if err != nil {
		panic(err)
	}
	return models.Project{ID: id, Featured: featured, CreatedAt: models.NewTime(ts), Tags: tags}
}

func ids(projects []models.Project) []int {
	out := make([]int, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestSortProjects(t *testing.T) {
	input := []models.Project{
		project(1, false, "2024-01-01"),
		project(2, true, "2023-06-01"),
		project(3, false, "2024-05-01"),
		project(4, true, "2024-02-01"),
	}

	sorted := SortProjects(input)
	assert.Equal(t, []int{4, 2, 3, 1}, ids(sorted))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(input), "input must not be reordered")
	assert.Empty(t, SortProjects(nil))
}

func TestFilterByTag(t *testing.T) {
	input := []models.Project{
		project(1, false, "2024-01-01", "go", "cli"),
		project(2, false, "2024-01-01", "web"),
		project(3, false, "2024-01-01", "Go"),
	}

	assert.Equal(t, []int{1, 2, 3}, ids(FilterByTag(input, "")))
	assert.Equal(t, []int{1}, ids(FilterByTag(input, "go")))
	assert.Empty(t, FilterByTag(input, "rust"))
}

func TestSplitJoinComma(t *testing.T) {
	assert.Equal(t, []string{"Go", "HTMX", "SQLite"}, SplitComma(" Go, HTMX ,,SQLite, "))
	assert.Equal(t, []string{}, SplitComma(""))
	assert.Equal(t, "Go, HTMX", JoinComma([]string{"Go", "HTMX"}))
	assert.Equal(t, "", JoinComma(nil))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AD", Initials("ada lovelace"))
	assert.Equal(t, "Z", Initials("z"))
	assert.Equal(t, "ÉL", Initials("élodie"))
	assert.Equal(t, "", Initials(""))
}

func TestPrimaryLink(t *testing.T) {
	link, ok := PrimaryLink(models.Project{LiveURL: "https://live", GitHubURL: "https://gh"})
	require.True(t, ok)
	assert.Equal(t, Link{Href: "https://live", Label: "Live demo"}, link)

	link, ok = PrimaryLink(models.Project{GitHubURL: "https://gh"})
	require.True(t, ok)
	assert.Equal(t, "Source", link.Label)

	_, ok = PrimaryLink(models.Project{})
	assert.False(t, ok)
}

func TestPrimaryMedia(t *testing.T) {
	m, ok := PrimaryMedia(models.Project{Images: []string{"assets/a.webm"}, CoverImageURL: "cover.png"})
	require.True(t, ok)
	assert.Equal(t, Media{Path: "assets/a.webm", Video: true}, m)

	m, ok = PrimaryMedia(models.Project{CoverImageURL: "cover.mp4"})
	require.True(t, ok)
	assert.False(t, m.Video, "covers are always images")

	_, ok = PrimaryMedia(models.Project{})
	assert.False(t, ok)
}

func TestCardLimits(t *testing.T) {
	p := models.Project{
		TechStack: []string{"a", "b", "c", "d", "e", "f"},
		Tags:      []string{"1", "2", "3", "4", "5"},
	}
	assert.Len(t, CardTech(p), 5)
	assert.Len(t, CardTags(p), 4)
	assert.Len(t, CardTags(models.Project{Tags: []string{"x"}}), 1)
}

func TestProjectFormPayloads(t *testing.T) {
	form := ProjectForm{
		Title:       "Folio",
		Description: "Portfolio",
		TechStack:   "Go, gin",
		Tags:        "web",
		GitHubURL:   "https://github.com/example/folio",
		Featured:    true,
	}
	assert.False(t, form.IsUpdate())

	raw, err := json.Marshal(form.CreatePayload())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Folio",
		"description": "Portfolio",
		"tech_stack": ["Go", "gin"],
		"tags": ["web"],
		"github_url": "https://github.com/example/folio",
		"live_url": null,
		"cover_image_url": null,
		"featured": true,
		"images": []
	}`, string(raw))

	form.ID = 3
	assert.True(t, form.IsUpdate())
	raw, err = json.Marshal(form.UpdatePayload())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "images")
}

func TestProjectFormRoundTrip(t *testing.T) {
	p := models.Project{
		ID:        9,
		Title:     "CLI",
		TechStack: []string{"Go", "Cobra"},
		Tags:      []string{"tools"},
		LiveURL:   "https://example.com",
	}
	form := ProjectFormFrom(p)
	assert.Equal(t, "Go, Cobra", form.TechStack)
	assert.Equal(t, 9, form.ID)
	assert.Equal(t, []string{"Go", "Cobra"}, form.UpdatePayload().TechStack)
}

func TestProfileFormPayload(t *testing.T) {
	five := 5
	profile := models.Profile{
		Name:            "Ada",
		Headline:        "Engineer",
		Skills:          []string{"Go", "SQL"},
		YearsExperience: &five,
		GitHub:          "https://github.com/ada",
	}

	form := ProfileFormFrom(profile)
	assert.Equal(t, "5", form.YearsExperience)
	assert.Equal(t, "Go, SQL", form.Skills)

	payload := form.Payload()
	require.NotNil(t, payload.YearsExperience)
	assert.Equal(t, 5, *payload.YearsExperience)
	assert.Nil(t, payload.Location)
	require.NotNil(t, payload.GitHub)
	assert.Equal(t, "https://github.com/ada", *payload.GitHub)

	for _, in := range []string{"", "  ", "abc", "2.5"} {
		form.YearsExperience = in
		assert.Nil(t, form.Payload().YearsExperience, "input %q", in)
	}
	form.YearsExperience = " 7 "
	assert.Equal(t, 7, *form.Payload().YearsExperience)
}

func TestPager(t *testing.T) {
	page := models.InquiryPage{
		Items:      make([]models.Inquiry, 4),
		Page:       3,
		PageSize:   10,
		Total:      24,
		TotalPages: 3,
	}
	p := NewPager(page)
	assert.Equal(t, 21, p.Start)
	assert.Equal(t, 24, p.End)
	assert.True(t, p.Show())
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 2, p.Prev())
	assert.Equal(t, 3, p.Next())

	empty := NewPager(models.InquiryPage{Page: 1, PageSize: 10, TotalPages: 0})
	assert.Zero(t, empty.Start)
	assert.Zero(t, empty.End)
	assert.False(t, empty.Show())
	assert.False(t, empty.HasPrev())
	assert.Equal(t, 1, empty.Prev())
	assert.Equal(t, 1, empty.Next())

	past := NewPager(models.InquiryPage{Page: 7, PageSize: 10, Total: 24, TotalPages: 3})
	assert.Zero(t, past.Start)
	assert.True(t, past.Show())
	assert.True(t, past.HasPrev())
	assert.Equal(t, 3, past.Prev())

	pastSingle := NewPager(models.InquiryPage{Page: 2, PageSize: 10, Total: 4, TotalPages: 1})
	assert.True(t, pastSingle.Show())
	assert.Equal(t, 1, pastSingle.Prev())
}
