// Package ratebook keeps the hourly rates typed in during a session.
// Rates live only as long as the session; they are never written to the document store.
package ratebook

import (
	"context"
	"sync"

	"github.com/planning-aidant/backend/internal/recap"
)

type Store interface {
	Rates(ctx context.Context, session string) (recap.Rates, error)
	SetEmployeeRate(ctx context.Context, session, employeeID string, rate float64) error
	SetClientRate(ctx context.Context, session, clientID string, rate float64) error
	Reset(ctx context.Context, session string) error
}

// Memory is a process-local Store.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]recap.Rates
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]recap.Rates)}
}

func (m *Memory) Rates(_ context.Context, session string) (recap.Rates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := recap.Rates{Employees: map[string]float64{}, Clients: map[string]float64{}}
	rates, ok := m.sessions[session]
	if !ok {
		return out, nil
	}
	for k, v := range rates.Employees {
		out.Employees[k] = v
	}
	for k, v := range rates.Clients {
		out.Clients[k] = v
	}
	return out, nil
}

func (m *Memory) SetEmployeeRate(_ context.Context, session, employeeID string, rate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(session).Employees[employeeID] = rate
	return nil
}

func (m *Memory) SetClientRate(_ context.Context, session, clientID string, rate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(session).Clients[clientID] = rate
	return nil
}

func (m *Memory) Reset(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, session)
	return nil
}

// session must be called with mu held.
func (m *Memory) session(session string) recap.Rates {
	rates, ok := m.sessions[session]
	if !ok {
		rates = recap.Rates{Employees: map[string]float64{}, Clients: map[string]float64{}}
		m.sessions[session] = rates
	}
	return rates
}
