package api

import (
	"io"

	"github.com/diogo/malcolmweb/internal/device"
	"github.com/diogo/malcolmweb/internal/models"
)

// MockMalcolmClient is a mock implementation of MalcolmClientInterface for testing
type MockMalcolmClient struct {
	// Mock return values
	OptimizeVal   []string
	OptimizeErr   error
	UploadVal     *models.UploadResult
	UploadErr     error
	DownloadVal   string
	DownloadErr   error
	HealthVal     string
	HealthErr     error
	MetaVal       map[string]any
	MetaErr       error
	BaseURLVal    string
	IsClosedVal   bool

	// Call counters/recorders
	OptimizeCalled bool
	UploadCalled   bool
	CloseCalled    bool
	LastProfile    device.Profile
	LastUploadPath string
	LastFilename   string
	LastDownload   string
}

// Ensure MockMalcolmClient implements MalcolmClientInterface
var _ MalcolmClientInterface = (*MockMalcolmClient)(nil)

func (m *MockMalcolmClient) Optimize(profile device.Profile) ([]string, error) {
	m.OptimizeCalled = true
	m.LastProfile = profile
	return m.OptimizeVal, m.OptimizeErr
}

func (m *MockMalcolmClient) UploadFile(path string) (*models.UploadResult, error) {
	m.UploadCalled = true
	m.LastUploadPath = path
	return m.UploadVal, m.UploadErr
}

func (m *MockMalcolmClient) UploadReader(r io.Reader, filename string) (*models.UploadResult, error) {
	m.UploadCalled = true
	m.LastFilename = filename
	return m.UploadVal, m.UploadErr
}

func (m *MockMalcolmClient) Download(filename, destDir string) (string, error) {
	m.LastDownload = filename
	return m.DownloadVal, m.DownloadErr
}

func (m *MockMalcolmClient) Health() (string, error) {
	return m.HealthVal, m.HealthErr
}

func (m *MockMalcolmClient) Meta() (map[string]any, error) {
	return m.MetaVal, m.MetaErr
}

func (m *MockMalcolmClient) BaseURL() string {
	return m.BaseURLVal
}

func (m *MockMalcolmClient) Close() {
	m.CloseCalled = true
}

func (m *MockMalcolmClient) IsClosed() bool {
	return m.IsClosedVal
}
