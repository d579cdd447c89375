package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/models"
	"github.com/Zachkp/folio/internal/portfolio"
)

// loadProfile returns nil when the profile cannot be fetched; public pages
// render without it
func (a *App) loadProfile(ctx context.Context) *models.Profile {
	profile, err := a.client.GetProfile(ctx)
	if err != nil {
		logger.Warnf("Error loading profile: %v", err)
		return nil
	}
	return &profile
}

func (a *App) loadTags(ctx context.Context) []string {
	tags, err := a.client.ListTags(ctx)
	if err != nil {
		logger.Warnf("Error loading tags: %v", err)
		return nil
	}
	return tags
}

// showcase gathers the data shared by the home and projects pages
func (a *App) showcase(c *gin.Context) gin.H {
	ctx := c.Request.Context()
	tag := strings.TrimSpace(c.Query("tag"))

	data := gin.H{
		"Profile": a.loadProfile(ctx),
		"Tags":    a.loadTags(ctx),
		"Tag":     tag,
	}

	projects, err := a.client.ListProjects(ctx, api.ListOptions{Tag: tag})
	if err != nil {
		logger.Errorf("Error loading projects (tag=%q): %v", tag, err)
		data["Error"] = msgProjectsLoadErr
	}
	// only exact tag matches are shown, whatever the API returns
	data["Projects"] = portfolio.FilterByTag(projects, tag)
	return data
}

// gridOnly reports whether the request wants just the project grid. History
// restores replace the whole body, so they get the full page.
func gridOnly(c *gin.Context) bool {
	c.Header("Vary", "HX-Request")
	return isHTMX(c) && c.GetHeader("HX-History-Restore-Request") != "true"
}

func (a *App) home(c *gin.Context) {
	data := a.showcase(c)
	if gridOnly(c) {
		c.HTML(http.StatusOK, "project-grid", data)
		return
	}

	data["Title"] = "Home"
	data["FilterAction"] = "/"
	data["HeroTitle"] = HeroTitle
	data["HeroIntro"] = HeroIntro
	c.HTML(http.StatusOK, "index.html", data)
}

func (a *App) projects(c *gin.Context) {
	data := a.showcase(c)
	if gridOnly(c) {
		c.HTML(http.StatusOK, "project-grid", data)
		return
	}

	data["Title"] = "Projects"
	data["FilterAction"] = "/projects"
	c.HTML(http.StatusOK, "projects.html", data)
}

func (a *App) project(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{
		"Title":   "Project",
		"Profile": a.loadProfile(ctx),
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		data["Error"] = msgInvalidProject
		c.HTML(http.StatusBadRequest, "project.html", data)
		return
	}

	project, err := a.client.GetProject(ctx, id)
	if err != nil {
		logger.Errorf("Error loading project %d: %v", id, err)
		status := http.StatusBadGateway
		if api.IsNotFound(err) {
			status = http.StatusNotFound
		}
		data["Error"] = msgProjectLoadError
		c.HTML(status, "project.html", data)
		return
	}

	data["Title"] = project.Title
	data["Project"] = project
	c.HTML(http.StatusOK, "project.html", data)
}

func (a *App) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"Title":    "Privacy Policy",
		"Profile":  a.loadProfile(c.Request.Context()),
		"Tracking": a.visits != nil,
	})
}
