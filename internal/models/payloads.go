package models

// ProjectCreate is the body of POST /projects. Nil pointers are sent as null.
type ProjectCreate struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TechStack     []string `json:"tech_stack"`
	Tags          []string `json:"tags"`
	GitHubURL     *string  `json:"github_url"`
	LiveURL       *string  `json:"live_url"`
	CoverImageURL *string  `json:"cover_image_url"`
	Featured      bool     `json:"featured"`
	Images        []string `json:"images"`
}

// ProjectUpdate is the body of PUT /projects/{id}. It never carries images;
// assets are managed through the assets endpoints.
type ProjectUpdate struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TechStack     []string `json:"tech_stack"`
	Tags          []string `json:"tags"`
	GitHubURL     *string  `json:"github_url"`
	LiveURL       *string  `json:"live_url"`
	CoverImageURL *string  `json:"cover_image_url"`
	Featured      bool     `json:"featured"`
}

// ProfileUpdate is the body of PUT /profile
type ProfileUpdate struct {
	Name            string   `json:"name"`
	Headline        string   `json:"headline"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience"`
	Location        *string  `json:"location"`
	AvatarURL       *string  `json:"avatar_url"`
	ResumeURL       *string  `json:"resume_url"`
	GitHub          *string  `json:"github"`
	LinkedIn        *string  `json:"linkedin"`
	Twitter         *string  `json:"twitter"`
	Website         *string  `json:"website"`
}

// InquiryCreate is the multipart body of POST /inquiries
type InquiryCreate struct {
	Name       string
	Email      string
	Company    string
	Message    string
	Attachment *File
}

// File is an in-memory upload forwarded to the API
type File struct {
	Name    string
	Content []byte
}
