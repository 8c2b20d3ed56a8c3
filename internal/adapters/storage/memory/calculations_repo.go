package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pk-dosing-form/internal/domain/calculations"
)

type calculationsRepo struct {
	mu   sync.RWMutex
	byID map[string]calculations.Calculation
}

func NewCalculationsRepo() calculations.Repository {
	return &calculationsRepo{
		byID: make(map[string]calculations.Calculation),
	}
}

func (r *calculationsRepo) Create(ctx context.Context, c calculations.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("calculation id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("calculation already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *calculationsRepo) GetByID(ctx context.Context, id string) (calculations.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return calculations.Calculation{}, calculations.ErrNotFound
	}
	return c, nil
}

func (r *calculationsRepo) ListRecent(ctx context.Context, limit int) ([]calculations.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]calculations.Calculation, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	// Más nuevos primero; desempate por id para orden estable en dev.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
