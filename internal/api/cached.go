package api

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Zachkp/folio/internal/models"
)

const (
	keyProfile        = "profile"
	keyTags           = "tags"
	prefixProjectList = "projects:"
	prefixProject     = "project:"
)

// Cached wraps a Client with a TTL read cache over the public reads. Every
// successful mutation drops the entries it could have changed, so the next
// page render refetches them; failed mutations leave the cache alone.
// Inquiries are never cached.
type Cached struct {
	Client
	cache *gocache.Cache

	// gen counts invalidations. A read that raced one is not stored.
	mu  sync.Mutex
	gen uint64
}

var _ Client = &Cached{}

// NewCached wraps next with a cache whose entries live for ttl
func NewCached(next Client, ttl time.Duration) *Cached {
	return &Cached{
		Client: next,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

func projectListKey(opts ListOptions) string {
	return prefixProjectList + opts.Tag + "|" + strconv.Itoa(opts.Limit)
}

func projectKey(id int) string {
	return prefixProject + strconv.Itoa(id)
}

func (c *Cached) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// store caches v unless an invalidation happened since gen was read
func (c *Cached) store(gen uint64, key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.cache.SetDefault(key, v)
	}
}

func (c *Cached) invalidateProjects() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Delete(keyTags)
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefixProjectList) || strings.HasPrefix(key, prefixProject) {
			c.cache.Delete(key)
		}
	}
}

func (c *Cached) invalidateProfile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Delete(keyProfile)
}

// GetProfile serves the profile from cache when fresh
func (c *Cached) GetProfile(ctx context.Context) (models.Profile, error) {
	if v, ok := c.cache.Get(keyProfile); ok {
		return v.(models.Profile), nil
	}
	gen := c.generation()
	profile, err := c.Client.GetProfile(ctx)
	if err != nil {
		return profile, err
	}
	c.store(gen, keyProfile, profile)
	return profile, nil
}

// ListProjects serves project listings from cache, keyed by filter
func (c *Cached) ListProjects(ctx context.Context, opts ListOptions) ([]models.Project, error) {
	key := projectListKey(opts)
	if v, ok := c.cache.Get(key); ok {
		return slices.Clone(v.([]models.Project)), nil
	}
	gen := c.generation()
	projects, err := c.Client.ListProjects(ctx, opts)
	if err != nil {
		return projects, err
	}
	c.store(gen, key, slices.Clone(projects))
	return projects, nil
}

// GetProject serves a single project from cache when fresh
func (c *Cached) GetProject(ctx context.Context, id int) (models.Project, error) {
	key := projectKey(id)
	if v, ok := c.cache.Get(key); ok {
		return v.(models.Project), nil
	}
	gen := c.generation()
	project, err := c.Client.GetProject(ctx, id)
	if err != nil {
		return project, err
	}
	c.store(gen, key, project)
	return project, nil
}

// ListTags serves the tag list from cache when fresh
func (c *Cached) ListTags(ctx context.Context) ([]string, error) {
	if v, ok := c.cache.Get(keyTags); ok {
		return slices.Clone(v.([]string)), nil
	}
	gen := c.generation()
	tags, err := c.Client.ListTags(ctx)
	if err != nil {
		return tags, err
	}
	c.store(gen, keyTags, slices.Clone(tags))
	return tags, nil
}

// UpdateProfile forwards the update and drops the cached profile on success
func (c *Cached) UpdateProfile(ctx context.Context, apiKey string, payload models.ProfileUpdate) (models.Profile, error) {
	profile, err := c.Client.UpdateProfile(ctx, apiKey, payload)
	if err == nil {
		c.invalidateProfile()
	}
	return profile, err
}

// UploadResume forwards the upload and drops the cached profile on success
func (c *Cached) UploadResume(ctx context.Context, apiKey string, file models.File) (models.Profile, error) {
	profile, err := c.Client.UploadResume(ctx, apiKey, file)
	if err == nil {
		c.invalidateProfile()
	}
	return profile, err
}

// CreateProject forwards the create and drops project and tag entries on success
func (c *Cached) CreateProject(ctx context.Context, apiKey string, payload models.ProjectCreate) (models.Project, error) {
	project, err := c.Client.CreateProject(ctx, apiKey, payload)
	if err == nil {
		c.invalidateProjects()
	}
	return project, err
}

// UpdateProject forwards the update and drops project and tag entries on success
func (c *Cached) UpdateProject(ctx context.Context, apiKey string, id int, payload models.ProjectUpdate) (models.Project, error) {
	project, err := c.Client.UpdateProject(ctx, apiKey, id, payload)
	if err == nil {
		c.invalidateProjects()
	}
	return project, err
}

// DeleteProject forwards the delete and drops project and tag entries on success
func (c *Cached) DeleteProject(ctx context.Context, apiKey string, id int) error {
	err := c.Client.DeleteProject(ctx, apiKey, id)
	if err == nil {
		c.invalidateProjects()
	}
	return err
}

// UploadProjectAssets forwards the upload and drops project entries on success
func (c *Cached) UploadProjectAssets(ctx context.Context, apiKey string, id int, files []models.File) (models.Project, error) {
	project, err := c.Client.UploadProjectAssets(ctx, apiKey, id, files)
	if err == nil {
		c.invalidateProjects()
	}
	return project, err
}

// DeleteProjectAsset forwards the removal and drops project entries on success
func (c *Cached) DeleteProjectAsset(ctx context.Context, apiKey string, id int, assetPath string) (models.Project, error) {
	project, err := c.Client.DeleteProjectAsset(ctx, apiKey, id, assetPath)
	if err == nil {
		c.invalidateProjects()
	}
	return project, err
}
