// Package models holds the records exchanged with the portfolio API. The API
// owns these shapes; the front end only renders and edits them.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayouts are tried in order when decoding API timestamps. The API emits
// naive datetimes (no zone) for created_at/updated_at and plain dates for
// date_started/date_completed.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Time is a time.Time that decodes the API's timestamp formats
type Time struct {
	time.Time
}

// NewTime wraps t
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// UnmarshalJSON accepts RFC 3339, zone-less ISO 8601 datetimes, plain dates and null
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// MarshalJSON writes RFC 3339, or null for the zero time
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Profile is the site owner's bio and contact record
type Profile struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Headline        string   `json:"headline"`
	Bio             string   `json:"bio"`
	Location        string   `json:"location,omitempty"`
	YearsExperience *int     `json:"years_experience,omitempty"`
	Skills          []string `json:"skills"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	ResumeURL       string   `json:"resume_url,omitempty"`
	GitHub          string   `json:"github,omitempty"`
	LinkedIn        string   `json:"linkedin,omitempty"`
	Twitter         string   `json:"twitter,omitempty"`
	Website         string   `json:"website,omitempty"`
	Instagram       string   `json:"instagram,omitempty"`
}

// Project is a portfolio entry with media and links
type Project struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TechStack     []string `json:"tech_stack"`
	Tags          []string `json:"tags"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
	Images        []string `json:"images"`
	GitHubURL     string   `json:"github_url,omitempty"`
	LiveURL       string   `json:"live_url,omitempty"`
	Featured      bool     `json:"featured"`
	DateStarted   Time     `json:"date_started"`
	DateCompleted Time     `json:"date_completed"`
	CreatedAt     Time     `json:"created_at"`
	UpdatedAt     Time     `json:"updated_at"`
}

// Inquiry is a contact-form submission
type Inquiry struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company,omitempty"`
	Message        string `json:"message"`
	AttachmentPath string `json:"attachment_path,omitempty"`
	CreatedAt      Time   `json:"created_at"`
}

// InquiryPage is one page of the paginated inquiry listing
type InquiryPage struct {
	Items      []Inquiry `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}
