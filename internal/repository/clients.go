package repository

import (
	"context"

	"github.com/planning-aidant/backend/internal/domain"
)

func clientFromDocument(doc Document) *domain.Client {
	return &domain.Client{
		ID:      doc.ID,
		Name:    stringField(doc.Fields, fieldName),
		Phone:   stringField(doc.Fields, fieldPhone),
		Address: stringField(doc.Fields, fieldAddress),
		Notes:   stringField(doc.Fields, fieldNotes),
	}
}

func clientFields(c *domain.Client) map[string]any {
	return map[string]any{
		fieldName:    c.Name,
		fieldPhone:   c.Phone,
		fieldAddress: c.Address,
		fieldNotes:   c.Notes,
	}
}

func (r *Repository) GetAllClients(ctx context.Context) ([]*domain.Client, error) {
	docs, err := r.ListAll(ctx, Clients)
	if err != nil {
		return nil, err
	}

	clients := make([]*domain.Client, 0, len(docs))
	for _, doc := range docs {
		clients = append(clients, clientFromDocument(doc))
	}
	return clients, nil
}

func (r *Repository) CreateClient(ctx context.Context, c *domain.Client) error {
	id, err := r.Create(ctx, Clients, clientFields(c))
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *Repository) UpdateClient(ctx context.Context, c *domain.Client) error {
	return r.Update(ctx, Clients, c.ID, clientFields(c))
}

func (r *Repository) DeleteClient(ctx context.Context, id string) error {
	return r.Delete(ctx, Clients, id)
}
