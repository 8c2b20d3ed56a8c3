package calculations

import "context"

type Repository interface {
	Create(ctx context.Context, c Calculation) error
	GetByID(ctx context.Context, id string) (Calculation, error)
	// ListRecent devuelve los más nuevos primero.
	ListRecent(ctx context.Context, limit int) ([]Calculation, error)
}
