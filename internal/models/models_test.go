package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 with zone",
			input: `"2024-03-05T10:20:30Z"`,
			want:  time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
		},
		{
			name:  "naive datetime with microseconds",
			input: `"2024-03-05T10:20:30.123456"`,
			want:  time.Date(2024, 3, 5, 10, 20, 30, 123456000, time.UTC),
		},
		{
			name:  "plain date",
			input: `"2023-11-01"`,
			want:  time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "null",
			input: `null`,
		},
		{
			name:    "garbage",
			input:   `"yesterday"`,
			wantErr: true,
		},
		{
			name:    "number",
			input:   `12`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v want %v", got.Time, tt.want)
		})
	}
}

func TestProjectDecodesAPIShape(t *testing.T) {
	body := `{
		"id": 7,
		"title": "Folio",
		"description": "Portfolio site",
		"tech_stack": ["Go", "HTMX"],
		"tags": ["web"],
		"cover_image_url": null,
		"images": ["assets/projects/7/demo.mp4"],
		"github_url": "https://github.com/example/folio",
		"live_url": null,
		"featured": true,
		"date_started": "2024-01-01",
		"date_completed": null,
		"created_at": "2024-02-01T09:00:00.5",
		"updated_at": "2024-02-02T09:00:00"
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "", p.CoverImageURL)
	assert.Equal(t, "", p.LiveURL)
	assert.True(t, p.Featured)
	assert.Equal(t, 2024, p.DateStarted.Year())
	assert.True(t, p.DateCompleted.IsZero())
	assert.Equal(t, time.February, p.CreatedAt.Month())
}

func TestPayloadNulls(t *testing.T) {
	raw, err := json.Marshal(ProjectUpdate{Title: "x", TechStack: []string{}, Tags: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "x",
		"description": "",
		"tech_stack": [],
		"tags": [],
		"github_url": null,
		"live_url": null,
		"cover_image_url": null,
		"featured": false
	}`, string(raw))
}
