package main

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logger"
	"github.com/Zachkp/folio/internal/media"
	"github.com/Zachkp/folio/internal/notify"
	"github.com/Zachkp/folio/internal/visits"
)

//go:embed templates/*.html static
var webFS embed.FS

const headerRequestID = "X-Request-ID"

// App holds everything the handlers need
type App struct {
	cfg        *config.Config
	client     api.Client
	assets     *media.Resolver
	visits     *visits.Store // nil when tracking is off
	mailer     *notify.Mailer
	adminToken string
	templates  *template.Template
}

// NewApp wires the handlers to their dependencies. store may be nil.
func NewApp(cfg *config.Config, client api.Client, store *visits.Store, mailer *notify.Mailer) (*App, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		client:     client,
		assets:     media.NewResolver(cfg.APIURL),
		visits:     store,
		mailer:     mailer,
		adminToken: token,
	}

	a.templates, err = template.New("").Funcs(a.templateFuncs()).ParseFS(webFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	logger.Info("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode && cfg.AdminPassword == "shipfast" {
		logger.Warnf("Using default admin password. Set %s.", config.EnvAdminPassword)
	}
	return a, nil
}

// generateToken returns the random admin session token, fresh per process
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Router builds the gin engine with every route registered
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), a.visitorTracking())
	r.SetHTMLTemplate(a.templates)

	static, _ := fs.Sub(webFS, "static")
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/", a.home)
	r.GET("/projects", a.projects)
	r.GET("/projects/:id", a.project)
	r.GET("/contact", a.contactPage)
	r.POST("/contact", a.submitContact)
	r.GET("/privacy", a.privacy)

	a.setupAdminRoutes(r)
	return r
}

// requestLogger tags each request with an ID and logs it once it completes
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set("request_id", id)

		c.Next()

		fields := map[string]interface{}{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.ErrorWithFields("request", fields)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.WarnWithFields("request", fields)
		default:
			logger.InfoWithFields("request", fields)
		}
	}
}

// visitorTracking records successful page views in the background. Static
// files, admin pages, htmx fragments and DNT clients are skipped.
func (a *App) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if a.visits == nil || c.Request.Method != http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if isHTMX(c) {
			return
		}
		path := c.Request.URL.Path
		if !visits.ShouldTrack(path, c.GetHeader("DNT")) {
			return
		}

		ip, userAgent := c.ClientIP(), c.Request.UserAgent()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.visits.Record(ctx, ip, userAgent, path); err != nil {
				logger.Warnf("Error recording visitor: %v", err)
			}
		}()
	}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
