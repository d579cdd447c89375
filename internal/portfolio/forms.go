package portfolio

import (
	"strconv"
	"strings"

	"github.com/Zachkp/folio/internal/models"
)

// ProjectForm is the admin project editor's state. ID is zero while creating.
type ProjectForm struct {
	ID            int    `form:"id"`
	Title         string `form:"title"`
	Description   string `form:"description"`
	TechStack     string `form:"tech_stack"`
	Tags          string `form:"tags"`
	GitHubURL     string `form:"github_url"`
	LiveURL       string `form:"live_url"`
	CoverImageURL string `form:"cover_image_url"`
	Featured      bool   `form:"featured"`
}

// ProjectFormFrom fills the editor from an existing project
func ProjectFormFrom(p models.Project) ProjectForm {
	return ProjectForm{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		TechStack:     JoinComma(p.TechStack),
		Tags:          JoinComma(p.Tags),
		GitHubURL:     p.GitHubURL,
		LiveURL:       p.LiveURL,
		CoverImageURL: p.CoverImageURL,
		Featured:      p.Featured,
	}
}

// IsUpdate reports whether saving the form updates an existing project
func (f ProjectForm) IsUpdate() bool {
	return f.ID > 0
}

// CreatePayload builds the POST /projects body. New projects start with no
// images; uploads are attached afterwards.
func (f ProjectForm) CreatePayload() models.ProjectCreate {
	return models.ProjectCreate{
		Title:         f.Title,
		Description:   f.Description,
		TechStack:     SplitComma(f.TechStack),
		Tags:          SplitComma(f.Tags),
		GitHubURL:     optional(f.GitHubURL),
		LiveURL:       optional(f.LiveURL),
		CoverImageURL: optional(f.CoverImageURL),
		Featured:      f.Featured,
		Images:        []string{},
	}
}

// UpdatePayload builds the PUT /projects/{id} body
func (f ProjectForm) UpdatePayload() models.ProjectUpdate {
	return models.ProjectUpdate{
		Title:         f.Title,
		Description:   f.Description,
		TechStack:     SplitComma(f.TechStack),
		Tags:          SplitComma(f.Tags),
		GitHubURL:     optional(f.GitHubURL),
		LiveURL:       optional(f.LiveURL),
		CoverImageURL: optional(f.CoverImageURL),
		Featured:      f.Featured,
	}
}

// ProfileForm is the admin profile editor's state
type ProfileForm struct {
	Name            string `form:"name"`
	Headline        string `form:"headline"`
	Bio             string `form:"bio"`
	Location        string `form:"location"`
	YearsExperience string `form:"years_experience"`
	Skills          string `form:"skills"`
	AvatarURL       string `form:"avatar_url"`
	ResumeURL       string `form:"resume_url"`
	GitHub          string `form:"github"`
	LinkedIn        string `form:"linkedin"`
	Twitter         string `form:"twitter"`
	Website         string `form:"website"`
}

// ProfileFormFrom fills the editor from the stored profile
func ProfileFormFrom(p models.Profile) ProfileForm {
	years := ""
	if p.YearsExperience != nil {
		years = strconv.Itoa(*p.YearsExperience)
	}
	return ProfileForm{
		Name:            p.Name,
		Headline:        p.Headline,
		Bio:             p.Bio,
		Location:        p.Location,
		YearsExperience: years,
		Skills:          JoinComma(p.Skills),
		AvatarURL:       p.AvatarURL,
		ResumeURL:       p.ResumeURL,
		GitHub:          p.GitHub,
		LinkedIn:        p.LinkedIn,
		Twitter:         p.Twitter,
		Website:         p.Website,
	}
}

// Payload builds the PUT /profile body. years_experience is null unless the
// input is a whole number.
func (f ProfileForm) Payload() models.ProfileUpdate {
	var years *int
	if n, err := strconv.Atoi(strings.TrimSpace(f.YearsExperience)); err == nil {
		years = &n
	}
	return models.ProfileUpdate{
		Name:            f.Name,
		Headline:        f.Headline,
		Bio:             f.Bio,
		Skills:          SplitComma(f.Skills),
		YearsExperience: years,
		Location:        optional(f.Location),
		AvatarURL:       optional(f.AvatarURL),
		ResumeURL:       optional(f.ResumeURL),
		GitHub:          optional(f.GitHub),
		LinkedIn:        optional(f.LinkedIn),
		Twitter:         optional(f.Twitter),
		Website:         optional(f.Website),
	}
}

// optional maps blank input to a JSON null
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
