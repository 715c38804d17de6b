package api

import (
	"context"
	"io"
	"sync"

	"github.com/diogo/docchat/internal/models"
)

// MockClient is a mock implementation of DocChatClient for testing.
// The *Func fields take precedence over the canned values.
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	URL        string
	UploadVal  *models.UploadResponse
	UploadErr  error
	ChatVal    *models.ChatResponse
	ChatErr    error
	UploadFunc func(ctx context.Context, path string) (*models.UploadResponse, error)
	ChatFunc   func(ctx context.Context, message string) (*models.ChatResponse, error)

	// Call counters/recorders
	UploadCalls  int
	ChatCalls    int
	LastPath     string
	LastFileName string
	Messages     []string
	CloseCalled  bool
}

// Ensure MockClient implements DocChatClient
var _ DocChatClient = (*MockClient)(nil)

func (m *MockClient) Upload(ctx context.Context, path string) (*models.UploadResponse, error) {
	m.mu.Lock()
	m.UploadCalls++
	m.LastPath = path
	fn, val, err := m.UploadFunc, m.UploadVal, m.UploadErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, path)
	}
	if val == nil && err == nil {
		val = &models.UploadResponse{}
	}
	return val, err
}

func (m *MockClient) UploadReader(ctx context.Context, r io.Reader, fileName string) (*models.UploadResponse, error) {
	m.mu.Lock()
	m.UploadCalls++
	m.LastFileName = fileName
	fn, val, err := m.UploadFunc, m.UploadVal, m.UploadErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, fileName)
	}
	if val == nil && err == nil {
		val = &models.UploadResponse{}
	}
	return val, err
}

func (m *MockClient) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls++
	m.Messages = append(m.Messages, message)
	fn, val, err := m.ChatFunc, m.ChatVal, m.ChatErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	if val == nil && err == nil {
		val = &models.ChatResponse{}
	}
	return val, err
}

func (m *MockClient) BaseURL() string {
	if m.URL == "" {
		return "http://mock"
	}
	return m.URL
}

func (m *MockClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns the upload and chat call counts
func (m *MockClient) Calls() (uploads, chats int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UploadCalls, m.ChatCalls
}
