package scoring

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/epds/internal/questionnaire"
	"github.com/abhisek/epds/internal/risk"
)

// MockResponse is a canned outcome for the MockClient.
type MockResponse struct {
	Assessment *risk.Assessment
	Err        error
}

// MockClient is a deterministic Client for testing.
// It returns canned responses in FIFO order and records all submissions.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []questionnaire.Submission
}

// NewMockClient creates a MockClient with the given canned responses.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

// Score returns the next canned response, or a TransportError when the
// queue is empty.
func (m *MockClient) Score(_ context.Context, sub questionnaire.Submission) (*risk.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, sub)

	if len(m.responses) == 0 {
		return nil, &TransportError{Err: errors.New("no canned response")}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil || resp.Assessment == nil {
		return nil, resp.Err
	}
	a := *resp.Assessment
	return &a, nil
}

// Name returns "mock".
func (m *MockClient) Name() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Score calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
