package calculations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"pk-dosing-form/internal/domain/pk"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("calculation not found")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Evaluate corre el motor sin guardar nada.
func (s *Service) Evaluate(in pk.Input) (pk.Result, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return pk.Result{}, err
	}
	return pk.Calculate(in), nil
}

// Create calcula y guarda el resultado en el historial.
func (s *Service) Create(ctx context.Context, in pk.Input) (Calculation, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return Calculation{}, err
	}

	c := Calculation{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Input:     in,
		Result:    pk.Calculate(in),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Calculation{}, fmt.Errorf("store calculation: %w", err)
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Calculation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Calculation{}, ErrNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return Calculation{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Calculation, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// normalizeInput valida la vía (enum) y lleva a 0 los parámetros no finitos,
// igual que un campo vacío del form. El resto no se valida: el motor
// sustituye denominadores nulos.
func normalizeInput(in pk.Input) (pk.Input, error) {
	in.Route = pk.Route(strings.ToLower(strings.TrimSpace(string(in.Route))))
	if !in.Route.Valid() {
		return pk.Input{}, fmt.Errorf("%w: route must be oral or iv_bolus", ErrInvalidInput)
	}
	if in.Route == "" {
		in.Route = pk.RouteOral
	}

	for _, v := range []*float64{
		&in.Dose, &in.F, &in.Vd, &in.Cl, &in.HalfLife, &in.Ka, &in.Tau, &in.CssTarget,
	} {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
		}
	}
	return in, nil
}
