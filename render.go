package main

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/media"
	"github.com/Zachkp/folio/internal/models"
	"github.com/Zachkp/folio/internal/portfolio"
)

const flashCookie = "admin_flash"

// flash is a one-shot banner carried across a redirect
type flash struct {
	Kind    string // success, warning or error
	Message string
}

func (a *App) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"asset":    a.assets.Resolve,
		"isVideo":  media.IsVideo,
		"isImage":  media.IsImage,
		"initials": portfolio.Initials,
		"cardTech": portfolio.CardTech,
		"cardTags": portfolio.CardTags,
		"join":     strings.Join,
		"primaryLink": func(p models.Project) *portfolio.Link {
			if link, ok := portfolio.PrimaryLink(p); ok {
				return &link
			}
			return nil
		},
		"primaryMedia": func(p models.Project) *portfolio.Media {
			if m, ok := portfolio.PrimaryMedia(p); ok {
				return &m
			}
			return nil
		},
		"monthYear": func(t models.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2006")
		},
		"longDate": func(t models.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"stamp": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"inquiriesURL": inquiriesURL,
	}
}

// inquiriesURL links to one page of the contacts tab, keeping the search
func inquiriesURL(page int, search string) string {
	q := url.Values{}
	q.Set("tab", tabContacts)
	q.Set("page", strconv.Itoa(page))
	if search != "" {
		q.Set("search", search)
	}
	return "/admin?" + q.Encode()
}

func setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, kind+"|"+message, 60, "/admin", "", false, true)
}

// popFlash returns and clears the pending flash, if any
func popFlash(c *gin.Context) *flash {
	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/admin", "", false, true)

	kind, message, ok := strings.Cut(v, "|")
	if !ok {
		return nil
	}
	return &flash{Kind: kind, Message: message}
}
