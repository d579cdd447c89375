package mock

import (
	"context"
	"sync"

	"github.com/Zachkp/folio/internal/api"
	"github.com/Zachkp/folio/internal/models"
)

// Call records one invocation of the mock
type Call struct {
	Method string
	APIKey string
	ID     int
	Args   any
}

// MockClient implements the api.Client interface for testing. Unset function
// fields return zero values and a nil error.
type MockClient struct {
	HealthCheckFn         func(ctx context.Context) (map[string]any, error)
	GetProfileFn          func(ctx context.Context) (models.Profile, error)
	UpdateProfileFn       func(ctx context.Context, apiKey string, payload models.ProfileUpdate) (models.Profile, error)
	UploadResumeFn        func(ctx context.Context, apiKey string, file models.File) (models.Profile, error)
	ListProjectsFn        func(ctx context.Context, opts api.ListOptions) ([]models.Project, error)
	GetProjectFn          func(ctx context.Context, id int) (models.Project, error)
	CreateProjectFn       func(ctx context.Context, apiKey string, payload models.ProjectCreate) (models.Project, error)
	UpdateProjectFn       func(ctx context.Context, apiKey string, id int, payload models.ProjectUpdate) (models.Project, error)
	DeleteProjectFn       func(ctx context.Context, apiKey string, id int) error
	UploadProjectAssetsFn func(ctx context.Context, apiKey string, id int, files []models.File) (models.Project, error)
	DeleteProjectAssetFn  func(ctx context.Context, apiKey string, id int, assetPath string) (models.Project, error)
	ListTagsFn            func(ctx context.Context) ([]string, error)
	CreateInquiryFn       func(ctx context.Context, inquiry models.InquiryCreate) (models.Inquiry, error)
	ListInquiriesFn       func(ctx context.Context, apiKey string, opts api.InquiryListOptions) (models.InquiryPage, error)

	mu    sync.Mutex
	calls []Call
}

var _ api.Client = &MockClient{}

func (m *MockClient) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Calls returns every recorded call in order
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsTo returns the recorded calls of one method
func (m *MockClient) CallsTo(method string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// HealthCheck implements api.Client
func (m *MockClient) HealthCheck(ctx context.Context) (map[string]any, error) {
	m.record(Call{Method: "HealthCheck"})
	if m.HealthCheckFn != nil {
		return m.HealthCheckFn(ctx)
	}
	return map[string]any{"ok": true}, nil
}

// GetProfile implements api.Client
func (m *MockClient) GetProfile(ctx context.Context) (models.Profile, error) {
	m.record(Call{Method: "GetProfile"})
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx)
	}
	return models.Profile{}, nil
}

// UpdateProfile implements api.Client
func (m *MockClient) UpdateProfile(ctx context.Context, apiKey string, payload models.ProfileUpdate) (models.Profile, error) {
	m.record(Call{Method: "UpdateProfile", APIKey: apiKey, Args: payload})
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, apiKey, payload)
	}
	return models.Profile{}, nil
}

// UploadResume implements api.Client
func (m *MockClient) UploadResume(ctx context.Context, apiKey string, file models.File) (models.Profile, error) {
	m.record(Call{Method: "UploadResume", APIKey: apiKey, Args: file})
	if m.UploadResumeFn != nil {
		return m.UploadResumeFn(ctx, apiKey, file)
	}
	return models.Profile{}, nil
}

// ListProjects implements api.Client
func (m *MockClient) ListProjects(ctx context.Context, opts api.ListOptions) ([]models.Project, error) {
	m.record(Call{Method: "ListProjects", Args: opts})
	if m.ListProjectsFn != nil {
		return m.ListProjectsFn(ctx, opts)
	}
	return []models.Project{}, nil
}

// GetProject implements api.Client
func (m *MockClient) GetProject(ctx context.Context, id int) (models.Project, error) {
	m.record(Call{Method: "GetProject", ID: id})
	if m.GetProjectFn != nil {
		return m.GetProjectFn(ctx, id)
	}
	return models.Project{ID: id}, nil
}

// CreateProject implements api.Client
func (m *MockClient) CreateProject(ctx context.Context, apiKey string, payload models.ProjectCreate) (models.Project, error) {
	m.record(Call{Method: "CreateProject", APIKey: apiKey, Args: payload})
	if m.CreateProjectFn != nil {
		return m.CreateProjectFn(ctx, apiKey, payload)
	}
	return models.Project{Title: payload.Title}, nil
}

// UpdateProject implements api.Client
func (m *MockClient) UpdateProject(ctx context.Context, apiKey string, id int, payload models.ProjectUpdate) (models.Project, error) {
	m.record(Call{Method: "UpdateProject", APIKey: apiKey, ID: id, Args: payload})
	if m.UpdateProjectFn != nil {
		return m.UpdateProjectFn(ctx, apiKey, id, payload)
	}
	return models.Project{ID: id, Title: payload.Title}, nil
}

// DeleteProject implements api.Client
func (m *MockClient) DeleteProject(ctx context.Context, apiKey string, id int) error {
	m.record(Call{Method: "DeleteProject", APIKey: apiKey, ID: id})
	if m.DeleteProjectFn != nil {
		return m.DeleteProjectFn(ctx, apiKey, id)
	}
	return nil
}

// UploadProjectAssets implements api.Client
func (m *MockClient) UploadProjectAssets(ctx context.Context, apiKey string, id int, files []models.File) (models.Project, error) {
	m.record(Call{Method: "UploadProjectAssets", APIKey: apiKey, ID: id, Args: files})
	if m.UploadProjectAssetsFn != nil {
		return m.UploadProjectAssetsFn(ctx, apiKey, id, files)
	}
	return models.Project{ID: id}, nil
}

// DeleteProjectAsset implements api.Client
func (m *MockClient) DeleteProjectAsset(ctx context.Context, apiKey string, id int, assetPath string) (models.Project, error) {
	m.record(Call{Method: "DeleteProjectAsset", APIKey: apiKey, ID: id, Args: assetPath})
	if m.DeleteProjectAssetFn != nil {
		return m.DeleteProjectAssetFn(ctx, apiKey, id, assetPath)
	}
	return models.Project{ID: id}, nil
}

// ListTags implements api.Client
func (m *MockClient) ListTags(ctx context.Context) ([]string, error) {
	m.record(Call{Method: "ListTags"})
	if m.ListTagsFn != nil {
		return m.ListTagsFn(ctx)
	}
	return []string{}, nil
}

// CreateInquiry implements api.Client
func (m *MockClient) CreateInquiry(ctx context.Context, inquiry models.InquiryCreate) (models.Inquiry, error) {
	m.record(Call{Method: "CreateInquiry", Args: inquiry})
	if m.CreateInquiryFn != nil {
		return m.CreateInquiryFn(ctx, inquiry)
	}
	return models.Inquiry{Name: inquiry.Name, Email: inquiry.Email, Message: inquiry.Message}, nil
}

// ListInquiries implements api.Client
func (m *MockClient) ListInquiries(ctx context.Context, apiKey string, opts api.InquiryListOptions) (models.InquiryPage, error) {
	m.record(Call{Method: "ListInquiries", APIKey: apiKey, Args: opts})
	if m.ListInquiriesFn != nil {
		return m.ListInquiriesFn(ctx, apiKey, opts)
	}
	return models.InquiryPage{Items: []models.Inquiry{}, Page: max(1, opts.Page), PageSize: opts.PageSize}, nil
}
