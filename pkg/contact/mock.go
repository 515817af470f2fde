package contact

import (
	"context"
	"sync"
)

// Mock implements Relay for testing.
type Mock struct {
	// RelayName is returned by Name; empty means "mock".
	RelayName string

	// SendFunc is called when Send is invoked.
	// If nil, Send validates the form and returns a fresh receipt.
	SendFunc func(ctx context.Context, f Form) (Receipt, error)

	mu    sync.Mutex
	forms []Form
}

// NewMock creates a mock relay that accepts every valid form.
func NewMock() *Mock {
	return &Mock{}
}

// Name implements Relay.
func (m *Mock) Name() string {
	if m.RelayName == "" {
		return "mock"
	}
	return m.RelayName
}

// Send records the form and calls SendFunc.
func (m *Mock) Send(ctx context.Context, f Form) (Receipt, error) {
	m.mu.Lock()
	m.forms = append(m.forms, f)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, f)
	}
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}
	return newReceipt(m.Name()), nil
}

// Forms returns every form passed to Send.
func (m *Mock) Forms() []Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Form, len(m.forms))
	copy(out, m.forms)
	return out
}

// CallCount returns the number of Send calls.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.forms)
}
