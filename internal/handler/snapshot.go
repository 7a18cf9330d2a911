package handler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/planning-aidant/backend/internal/domain"
)

// snapshot is the full content of the three collections, loaded together.
type snapshot struct {
	clients      []*domain.Client
	employees    []*domain.Employee
	appointments []*domain.Appointment
}

func (h *Handler) loadSnapshot(ctx context.Context) (snapshot, error) {
	var s snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s.clients, err = h.repository.GetAllClients(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		s.employees, err = h.repository.GetAllEmployees(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		s.appointments, err = h.repository.GetAllAppointments(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return s, nil
}
