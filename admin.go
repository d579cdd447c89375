// admin.go - session gate and the dashboard that edits the portfolio API
package main

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/models"
	"github.com/Zachkp/folio/internal/portfolio"
)

const (
	sessionCookie = "admin_token"
	apiKeyCookie  = "admin_api_key"

	tabProjects = "projects"
	tabProfile  = "profile"
	tabContacts = "contacts"
	tabTraffic  = "traffic"
)

var tabs = []string{tabProjects, tabProfile, tabContacts, tabTraffic}

// dashboardState is what a dashboard render starts from. Failed submissions
// pass the posted form back so nothing typed is lost.
type dashboardState struct {
	Tab         string
	Flash       *flash
	ProjectForm *portfolio.ProjectForm
	ProfileForm *portfolio.ProfileForm
}

func validTab(tab string) string {
	for _, t := range tabs {
		if t == tab {
			return tab
		}
	}
	return tabProjects
}

func (a *App) isAdmin(c *gin.Context) bool {
	token, err := c.Cookie(sessionCookie)
	return err == nil && subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) == 1
}

// Middleware to check admin authentication
func (a *App) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.isAdmin(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// checkCredentials compares the trimmed emails case-insensitively and the
// password in constant time
func (a *App) checkCredentials(email, password string) bool {
	emailOK := strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(a.cfg.AdminEmail))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
	return emailOK && passwordOK
}

// apiKey is the key entered on the dashboard, falling back to ADMIN_API_KEY
func (a *App) apiKey(c *gin.Context) string {
	if key, err := c.Cookie(apiKeyCookie); err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key)
	}
	return a.cfg.APIKey
}

// requireKey returns the API key, or re-renders the tab asking for one
func (a *App) requireKey(c *gin.Context, st dashboardState) (string, bool) {
	key := a.apiKey(c)
	if key == "" {
		st.Flash = &flash{Kind: "error", Message: msgNeedAPIKey}
		a.renderDashboard(c, http.StatusBadRequest, st)
		return "", false
	}
	return key, true
}

func redirectTab(c *gin.Context, tab string) {
	c.Redirect(http.StatusSeeOther, "/admin?tab="+tab)
}

// failureStatus passes API client errors through and reports everything
// else as a bad gateway
func failureStatus(err error) int {
	if code := api.StatusCode(err); code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return code
	}
	return http.StatusBadGateway
}

func projectID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

// Setup all admin routes
func (a *App) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		if a.isAdmin(c) {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"Title": "Admin Login", "Email": ""})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		email := c.PostForm("email")
		if !a.checkCredentials(email, c.PostForm("password")) {
			logger.Warnf("Failed admin login attempt from %s", a.clientHash(c))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"Title": "Admin Login",
				"Email": email,
				"Error": msgLoginFailed,
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, a.adminToken, 3600*24, "/admin", "", c.Request.TLS != nil, true)
		logger.Infof("Admin login successful from %s", a.clientHash(c))
		c.Redirect(http.StatusSeeOther, "/admin")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(sessionCookie, "", -1, "/admin", "", false, true)
		c.SetCookie(apiKeyCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(a.adminAuthMiddleware())

	adminGroup.GET("", func(c *gin.Context) {
		a.renderDashboard(c, http.StatusOK, dashboardState{
			Tab:   validTab(c.Query("tab")),
			Flash: popFlash(c),
		})
	})

	adminGroup.POST("/api-key", a.saveAPIKey)
	adminGroup.POST("/projects", a.saveProject)
	adminGroup.POST("/projects/:id/delete", a.deleteProject)
	adminGroup.POST("/projects/:id/assets", a.uploadAssets)
	adminGroup.POST("/projects/:id/assets/delete", a.deleteAsset)
	adminGroup.POST("/profile", a.saveProfile)
	adminGroup.POST("/profile/resume", a.uploadResume)

	adminGroup.GET("/api/stats", a.statsJSON)
	adminGroup.POST("/visits/prune", a.pruneVisits)
	adminGroup.GET("/export/stats", a.exportStats)
}

// clientHash identifies a client in logs without recording its IP
func (a *App) clientHash(c *gin.Context) string {
	if a.visits == nil {
		return "unknown"
	}
	return a.visits.HashIP(c.ClientIP())
}

func (a *App) renderDashboard(c *gin.Context, status int, st dashboardState) {
	ctx := c.Request.Context()
	key := a.apiKey(c)
	data := gin.H{
		"Title":       "Admin",
		"Tab":         st.Tab,
		"Tabs":        tabs,
		"Flash":       st.Flash,
		"HasAPIKey":   key != "",
		"KeyFromEnv":  key != "" && key == a.cfg.APIKey,
		"AdminEmail":  a.cfg.AdminEmail,
		"APIURL":      a.cfg.APIURL,
		"Tracking":    a.visits != nil,
		"ContactsTab": tabContacts,
	}

	profile, profileErr := a.client.GetProfile(ctx)
	if profileErr != nil {
		logger.Warnf("Error loading profile for dashboard: %v", profileErr)
	} else {
		data["Profile"] = profile
	}

	switch st.Tab {
	case tabProjects:
		a.projectsTab(c, data, st)
	case tabProfile:
		form := portfolio.ProfileFormFrom(profile)
		if st.ProfileForm != nil {
			form = *st.ProfileForm
		} else if profileErr != nil {
			data["ProfileError"] = api.Message(profileErr, "Could not load profile.")
		}
		data["ProfileForm"] = form
	case tabContacts:
		a.contactsTab(c, data, key)
	case tabTraffic:
		if a.visits != nil {
			stats, err := a.visits.Stats(ctx)
			if err != nil {
				logger.Errorf("Error loading admin stats: %v", err)
				data["StatsError"] = "Failed to load statistics"
			} else {
				data["Stats"] = stats
			}
		}
	}

	c.HTML(status, "admin.html", data)
}

func (a *App) projectsTab(c *gin.Context, data gin.H, st dashboardState) {
	ctx := c.Request.Context()

	projects, err := a.client.ListProjects(ctx, api.ListOptions{})
	if err != nil {
		logger.Errorf("Error loading projects for dashboard: %v", err)
		data["ProjectsError"] = api.Message(err, msgProjectsLoadErr)
	}
	projects = portfolio.SortProjects(projects)
	data["Projects"] = projects

	form := portfolio.ProjectForm{}
	if st.ProjectForm != nil {
		form = *st.ProjectForm
	} else if id, err := strconv.Atoi(c.Query("edit")); err == nil && id > 0 {
		form = a.editForm(c, projects, id, data)
	}
	data["ProjectForm"] = form
}

// editForm loads project id into the editor, preferring the list already
// fetched
func (a *App) editForm(c *gin.Context, projects []models.Project, id int, data gin.H) portfolio.ProjectForm {
	for _, p := range projects {
		if p.ID == id {
			return portfolio.ProjectFormFrom(p)
		}
	}

	p, err := a.client.GetProject(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("Error loading project %d for editing: %v", id, err)
		data["Flash"] = &flash{Kind: "error", Message: msgProjectLoadError}
		return portfolio.ProjectForm{}
	}
	return portfolio.ProjectFormFrom(p)
}

func (a *App) contactsTab(c *gin.Context, data gin.H, key string) {
	search := strings.TrimSpace(c.Query("search"))
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	data["Search"] = search

	if key == "" {
		data["NeedsKey"] = true
		return
	}

	result, err := a.client.ListInquiries(c.Request.Context(), key, api.InquiryListOptions{
		Page:     page,
		PageSize: portfolio.InquiryPageSize,
		Search:   search,
	})
	if err != nil {
		logger.Errorf("Error loading inquiries: %v", err)
		data["InquiriesError"] = api.Detail(err, msgInquiriesFailed)
		return
	}
	data["Inquiries"] = result.Items
	data["Pager"] = portfolio.NewPager(result)
}

func (a *App) saveAPIKey(c *gin.Context) {
	key := strings.TrimSpace(c.PostForm("api_key"))
	tab := validTab(c.PostForm("tab"))
	if key == "" {
		c.SetCookie(apiKeyCookie, "", -1, "/admin", "", false, true)
		setFlash(c, "success", "API key cleared")
		redirectTab(c, tab)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(apiKeyCookie, key, 3600*24*30, "/admin", "", c.Request.TLS != nil, true)
	setFlash(c, "success", "API key saved")
	redirectTab(c, tab)
}

func (a *App) saveProject(c *gin.Context) {
	var form portfolio.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderDashboard(c, http.StatusBadRequest, dashboardState{
			Tab:   tabProjects,
			Flash: &flash{Kind: "error", Message: fallbackSaveProject},
		})
		return
	}

	st := dashboardState{Tab: tabProjects, ProjectForm: &form}
	key, ok := a.requireKey(c, st)
	if !ok {
		return
	}

	files, err := readUploads(c, "assets")
	if err != nil {
		logger.Errorf("Error reading project assets: %v", err)
		st.Flash = &flash{Kind: "error", Message: fallbackUploadAssets}
		a.renderDashboard(c, http.StatusBadRequest, st)
		return
	}

	ctx := c.Request.Context()
	var saved models.Project
	if form.IsUpdate() {
		saved, err = a.client.UpdateProject(ctx, key, form.ID, form.UpdatePayload())
	} else {
		saved, err = a.client.CreateProject(ctx, key, form.CreatePayload())
	}
	if err != nil {
		logger.Errorf("Error saving project %q: %v", form.Title, err)
		st.Flash = &flash{Kind: "error", Message: api.Message(err, fallbackSaveProject)}
		a.renderDashboard(c, failureStatus(err), st)
		return
	}

	if len(files) > 0 {
		if _, err := a.client.UploadProjectAssets(ctx, key, saved.ID, files); err != nil {
			logger.Errorf("Error uploading assets for project %d: %v", saved.ID, err)
			setFlash(c, "warning", msgAssetPartial)
			redirectTab(c, tabProjects)
			return
		}
	}

	logger.Infof("Project %d saved", saved.ID)
	setFlash(c, "success", fmt.Sprintf("Project %s saved!", saved.Title))
	redirectTab(c, tabProjects)
}

func (a *App) deleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		setFlash(c, "error", msgInvalidProject)
		redirectTab(c, tabProjects)
		return
	}
	key, ok := a.requireKey(c, dashboardState{Tab: tabProjects})
	if !ok {
		return
	}

	if err := a.client.DeleteProject(c.Request.Context(), key, id); err != nil {
		logger.Errorf("Error deleting project %d: %v", id, err)
		setFlash(c, "error", api.Message(err, fallbackDeleteProject))
		redirectTab(c, tabProjects)
		return
	}

	logger.Infof("Project %d deleted by admin from %s", id, a.clientHash(c))
	setFlash(c, "success", msgProjectDeleted)
	redirectTab(c, tabProjects)
}

func (a *App) uploadAssets(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		setFlash(c, "error", msgInvalidProject)
		redirectTab(c, tabProjects)
		return
	}

	files, err := readUploads(c, "files")
	if err != nil {
		logger.Errorf("Error reading project assets: %v", err)
		setFlash(c, "error", fallbackUploadAssets)
		redirectTab(c, tabProjects)
		return
	}
	if len(files) == 0 {
		redirectTab(c, tabProjects)
		return
	}

	key, ok := a.requireKey(c, dashboardState{Tab: tabProjects})
	if !ok {
		return
	}

	if _, err := a.client.UploadProjectAssets(c.Request.Context(), key, id, files); err != nil {
		logger.Errorf("Error uploading assets for project %d: %v", id, err)
		setFlash(c, "error", api.Message(err, fallbackUploadAssets))
	}
	redirectTab(c, tabProjects)
}

func (a *App) deleteAsset(c *gin.Context) {
	id, ok := projectID(c)
	assetPath := strings.TrimSpace(c.PostForm("asset_path"))
	if !ok || assetPath == "" {
		setFlash(c, "error", fallbackRemoveAsset)
		redirectTab(c, tabProjects)
		return
	}
	key, ok := a.requireKey(c, dashboardState{Tab: tabProjects})
	if !ok {
		return
	}

	if _, err := a.client.DeleteProjectAsset(c.Request.Context(), key, id, assetPath); err != nil {
		logger.Errorf("Error removing asset %q from project %d: %v", assetPath, id, err)
		setFlash(c, "error", api.Message(err, fallbackRemoveAsset))
	}
	redirectTab(c, tabProjects)
}

func (a *App) saveProfile(c *gin.Context) {
	var form portfolio.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderDashboard(c, http.StatusBadRequest, dashboardState{
			Tab:   tabProfile,
			Flash: &flash{Kind: "error", Message: fallbackUpdateProfile},
		})
		return
	}

	st := dashboardState{Tab: tabProfile, ProfileForm: &form}
	key, ok := a.requireKey(c, st)
	if !ok {
		return
	}

	updated, err := a.client.UpdateProfile(c.Request.Context(), key, form.Payload())
	if err != nil {
		logger.Errorf("Error updating profile: %v", err)
		st.Flash = &flash{Kind: "error", Message: api.Message(err, fallbackUpdateProfile)}
		a.renderDashboard(c, failureStatus(err), st)
		return
	}

	setFlash(c, "success", fmt.Sprintf("Profile for %s updated!", updated.Name))
	redirectTab(c, tabProfile)
}

func (a *App) uploadResume(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		redirectTab(c, tabProfile)
		return
	}
	key, ok := a.requireKey(c, dashboardState{Tab: tabProfile})
	if !ok {
		return
	}

	file, err := readUpload(fh)
	if err == nil {
		_, err = a.client.UploadResume(c.Request.Context(), key, file)
	}
	if err != nil {
		logger.Errorf("Error uploading resume: %v", err)
		setFlash(c, "error", api.Message(err, fallbackUploadResume))
		redirectTab(c, tabProfile)
		return
	}

	setFlash(c, "success", msgResumeUpdated)
	redirectTab(c, tabProfile)
}

// Admin API endpoint for HTMX/AJAX
func (a *App) statsJSON(c *gin.Context) {
	if a.visits == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor tracking is disabled"})
		return
	}
	stats, err := a.visits.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Privacy compliance: drop visits past the retention window now
func (a *App) pruneVisits(c *gin.Context) {
	if a.visits == nil {
		setFlash(c, "error", "Visitor tracking is disabled")
		redirectTab(c, tabTraffic)
		return
	}

	n, err := a.visits.Prune(c.Request.Context())
	if err != nil {
		logger.Errorf("Error cleaning up old visitor data: %v", err)
		setFlash(c, "error", "Failed to clean up visitor data")
		redirectTab(c, tabTraffic)
		return
	}

	logger.Infof("Privacy cleanup: removed %d visitor records older than 12 months", n)
	setFlash(c, "success", fmt.Sprintf("Removed %d visitor records older than 12 months", n))
	redirectTab(c, tabTraffic)
}

// Admin statistics export (for backups or analysis)
func (a *App) exportStats(c *gin.Context) {
	if a.visits == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor tracking is disabled"})
		return
	}
	stats, err := a.visits.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=visit-stats.json")
	logger.Infof("Visit stats exported by %s", a.clientHash(c))
	c.JSON(http.StatusOK, stats)
}
