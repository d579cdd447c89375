// Package media turns the API's stored asset paths into browser URLs.
package media

import (
	"regexp"
	"strings"
)

var (
	videoExt = regexp.MustCompile(`(?i)\.(mp4|webm|ogg)$`)
	imageExt = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|svg)$`)
)

// Resolver maps asset paths onto the API's public asset route
type Resolver struct {
	base string
}

// NewResolver returns a Resolver rooted at the API base URL
func NewResolver(apiBaseURL string) *Resolver {
	return &Resolver{base: strings.TrimSuffix(apiBaseURL, "/")}
}

// Resolve returns the URL for path. Absolute http(s) URLs pass through,
// paths already under assets/ are joined to the base, anything else is
// placed under base/assets/. An empty path yields "".
func (r *Resolver) Resolve(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	relative := strings.TrimLeft(path, "/")
	if strings.HasPrefix(relative, "assets/") {
		return r.base + "/" + relative
	}
	return r.base + "/assets/" + relative
}

// IsVideo reports whether path names a browser-playable video
func IsVideo(path string) bool {
	return videoExt.MatchString(path)
}

// IsImage reports whether path names an image
func IsImage(path string) bool {
	return imageExt.MatchString(path)
}
