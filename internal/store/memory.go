package store

import (
	"context"

	"webstore-scraper/internal/model"
)

// Memory is an in-process Store. It backs tests and DSN-less dry runs.
type Memory struct {
	order []string
	items map[string]model.Item
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]model.Item)}
}

func (m *Memory) FindByExternalID(_ context.Context, id string) (*model.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (m *Memory) Upsert(_ context.Context, item model.Item) error {
	if _, ok := m.items[item.ExternalID]; !ok {
		m.order = append(m.order, item.ExternalID)
	}
	m.items[item.ExternalID] = item
	return nil
}

// All returns records in first-insert order.
func (m *Memory) All(_ context.Context) ([]model.Item, error) {
	out := make([]model.Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	return int64(len(m.items)), nil
}
