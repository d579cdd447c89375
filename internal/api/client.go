// Package api provides the client for the portfolio CRUD API: profile,
// projects, tags and inquiries. Mutating calls take the admin API key, which
// is sent as the X-API-Key header.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/Zachkp/folio/internal/models"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// DefaultBaseURL is where the API listens in local development
const DefaultBaseURL = "http://localhost:8000"

// Client is the interface for the portfolio API
type Client interface {
	HealthCheck(ctx context.Context) (map[string]any, error)

	// Profile
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, apiKey string, payload models.ProfileUpdate) (models.Profile, error)
	UploadResume(ctx context.Context, apiKey string, file models.File) (models.Profile, error)

	// Projects
	ListProjects(ctx context.Context, opts ListOptions) ([]models.Project, error)
	GetProject(ctx context.Context, id int) (models.Project, error)
	CreateProject(ctx context.Context, apiKey string, payload models.ProjectCreate) (models.Project, error)
	UpdateProject(ctx context.Context, apiKey string, id int, payload models.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, apiKey string, id int) error
	UploadProjectAssets(ctx context.Context, apiKey string, id int, files []models.File) (models.Project, error)
	DeleteProjectAsset(ctx context.Context, apiKey string, id int, assetPath string) (models.Project, error)

	// Tags
	ListTags(ctx context.Context) ([]string, error)

	// Inquiries
	CreateInquiry(ctx context.Context, inquiry models.InquiryCreate) (models.Inquiry, error)
	ListInquiries(ctx context.Context, apiKey string, opts InquiryListOptions) (models.InquiryPage, error)
}

var _ Client = &APIClient{}

// ListOptions narrows GET /projects
type ListOptions struct {
	Tag   string
	Limit int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Tag != "" {
		q.Set("tag", o.Tag)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// InquiryListOptions selects a page of GET /inquiries
type InquiryListOptions struct {
	Page     int
	PageSize int
	Search   string
}

func (o InquiryListOptions) values() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(1, o.Page)))
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if s := strings.TrimSpace(o.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (*APIClient, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &APIClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		timeout: timeout,
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// request describes one API call
type request struct {
	method string
	path   string
	query  url.Values
	apiKey string

	// body is sent as JSON when set
	body interface{}

	// multipart bodies; fields keep their order for repeated keys
	multipart bool
	fields    [][2]string
	files     []*fiber.FormFile
}

// createAgent creates a new Fiber Agent for the request
func (c *APIClient) createAgent(ctx context.Context, req request) (*fiber.Agent, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	fullURL := c.baseURL + req.path

	var agent *fiber.Agent
	switch req.method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", req.method)
	}

	// Timeout comes from the context deadline, else the client default
	agent.Timeout(timeout)

	if len(req.query) > 0 {
		agent.QueryString(req.query.Encode())
	}

	agent.Set("Accept", "application/json")
	if req.apiKey != "" {
		agent.Set("X-API-Key", req.apiKey)
	}

	switch {
	case req.multipart:
		args := fiber.AcquireArgs()
		defer fiber.ReleaseArgs(args)
		for _, kv := range req.fields {
			args.Add(kv[0], kv[1])
		}
		// files must be registered before the form is written
		agent.FileData(req.files...).MultipartForm(args)
	case req.body != nil:
		agent.JSON(req.body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		return newAPIError(statusCode, body)
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, req request, response interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent, err := c.createAgent(ctx, req)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

func formFiles(field string, files ...models.File) []*fiber.FormFile {
	out := make([]*fiber.FormFile, 0, len(files))
	for _, f := range files {
		out = append(out, &fiber.FormFile{
			Fieldname: field,
			Name:      f.Name,
			Content:   f.Content,
		})
	}
	return out
}

func projectPath(id int) string {
	return "/projects/" + strconv.Itoa(id)
}

// HealthCheck calls GET /health
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	err := c.executeRequest(ctx, request{method: http.MethodGet, path: "/health"}, &resp)
	return resp, err
}

// GetProfile calls GET /profile
func (c *APIClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	err := c.executeRequest(ctx, request{method: http.MethodGet, path: "/profile"}, &profile)
	return profile, err
}

// UpdateProfile calls PUT /profile
func (c *APIClient) UpdateProfile(ctx context.Context, apiKey string, payload models.ProfileUpdate) (models.Profile, error) {
	var profile models.Profile
	err := c.executeRequest(ctx, request{
		method: http.MethodPut,
		path:   "/profile",
		apiKey: apiKey,
		body:   payload,
	}, &profile)
	return profile, err
}

// UploadResume calls POST /profile/resume with the file in the "file" field
func (c *APIClient) UploadResume(ctx context.Context, apiKey string, file models.File) (models.Profile, error) {
	var profile models.Profile
	err := c.executeRequest(ctx, request{
		method:    http.MethodPost,
		path:      "/profile/resume",
		apiKey:    apiKey,
		multipart: true,
		files:     formFiles("file", file),
	}, &profile)
	return profile, err
}

// ListProjects calls GET /projects
func (c *APIClient) ListProjects(ctx context.Context, opts ListOptions) ([]models.Project, error) {
	projects := []models.Project{}
	err := c.executeRequest(ctx, request{
		method: http.MethodGet,
		path:   "/projects",
		query:  opts.values(),
	}, &projects)
	return projects, err
}

// GetProject calls GET /projects/{id}
func (c *APIClient) GetProject(ctx context.Context, id int) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, request{method: http.MethodGet, path: projectPath(id)}, &project)
	return project, err
}

// CreateProject calls POST /projects
func (c *APIClient) CreateProject(ctx context.Context, apiKey string, payload models.ProjectCreate) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, request{
		method: http.MethodPost,
		path:   "/projects",
		apiKey: apiKey,
		body:   payload,
	}, &project)
	return project, err
}

// UpdateProject calls PUT /projects/{id}
func (c *APIClient) UpdateProject(ctx context.Context, apiKey string, id int, payload models.ProjectUpdate) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, request{
		method: http.MethodPut,
		path:   projectPath(id),
		apiKey: apiKey,
		body:   payload,
	}, &project)
	return project, err
}

// DeleteProject calls DELETE /projects/{id}
func (c *APIClient) DeleteProject(ctx context.Context, apiKey string, id int) error {
	return c.executeRequest(ctx, request{
		method: http.MethodDelete,
		path:   projectPath(id),
		apiKey: apiKey,
	}, nil)
}

// UploadProjectAssets calls POST /projects/{id}/assets, one "files" part per file
func (c *APIClient) UploadProjectAssets(ctx context.Context, apiKey string, id int, files []models.File) (models.Project, error) {
	var project models.Project
	if len(files) == 0 {
		return project, fmt.Errorf("no files to upload")
	}
	err := c.executeRequest(ctx, request{
		method:    http.MethodPost,
		path:      projectPath(id) + "/assets",
		apiKey:    apiKey,
		multipart: true,
		files:     formFiles("files", files...),
	}, &project)
	return project, err
}

// DeleteProjectAsset calls DELETE /projects/{id}/assets?asset_path=...
func (c *APIClient) DeleteProjectAsset(ctx context.Context, apiKey string, id int, assetPath string) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, request{
		method: http.MethodDelete,
		path:   projectPath(id) + "/assets",
		query:  url.Values{"asset_path": {assetPath}},
		apiKey: apiKey,
	}, &project)
	return project, err
}

// ListTags calls GET /tags
func (c *APIClient) ListTags(ctx context.Context) ([]string, error) {
	tags := []string{}
	err := c.executeRequest(ctx, request{method: http.MethodGet, path: "/tags"}, &tags)
	return tags, err
}

// CreateInquiry calls POST /inquiries as multipart form data. Company and
// attachment are only sent when present.
func (c *APIClient) CreateInquiry(ctx context.Context, inquiry models.InquiryCreate) (models.Inquiry, error) {
	fields := [][2]string{
		{"name", inquiry.Name},
		{"email", inquiry.Email},
	}
	if inquiry.Company != "" {
		fields = append(fields, [2]string{"company", inquiry.Company})
	}
	fields = append(fields, [2]string{"message", inquiry.Message})

	var files []*fiber.FormFile
	if inquiry.Attachment != nil {
		files = formFiles("attachment", *inquiry.Attachment)
	}

	var created models.Inquiry
	err := c.executeRequest(ctx, request{
		method:    http.MethodPost,
		path:      "/inquiries",
		multipart: true,
		fields:    fields,
		files:     files,
	}, &created)
	return created, err
}

// ListInquiries calls GET /inquiries
func (c *APIClient) ListInquiries(ctx context.Context, apiKey string, opts InquiryListOptions) (models.InquiryPage, error) {
	var page models.InquiryPage
	err := c.executeRequest(ctx, request{
		method: http.MethodGet,
		path:   "/inquiries",
		query:  opts.values(),
		apiKey: apiKey,
	}, &page)
	return page, err
}
