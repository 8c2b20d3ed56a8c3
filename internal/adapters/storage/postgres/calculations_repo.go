package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pk-dosing-form/internal/domain/calculations"
	"pk-dosing-form/internal/domain/pk"
)

type CalculationsRepo struct {
	db *sqlx.DB
}

func NewCalculationsRepo(db *sqlx.DB) *CalculationsRepo {
	return &CalculationsRepo{db: db}
}

// calculationRow es la fila tal cual; input/result viajan como JSONB.
type calculationRow struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Input     []byte    `db:"input"`
	Result    []byte    `db:"result"`
}

func (r *CalculationsRepo) Create(ctx context.Context, c calculations.Calculation) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO calculations (id, created_at, input, result)
		VALUES (:id, :created_at, :input, :result)
	`, row)
	return err
}

func (r *CalculationsRepo) GetByID(ctx context.Context, id string) (calculations.Calculation, error) {
	var row calculationRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, created_at, input, result
		FROM calculations
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calculations.Calculation{}, calculations.ErrNotFound
		}
		return calculations.Calculation{}, err
	}
	return fromRow(row)
}

func (r *CalculationsRepo) ListRecent(ctx context.Context, limit int) ([]calculations.Calculation, error) {
	var rows []calculationRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, created_at, input, result
		FROM calculations
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	out := make([]calculations.Calculation, 0, len(rows))
	for _, row := range rows {
		c, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func toRow(c calculations.Calculation) (calculationRow, error) {
	in, err := json.Marshal(c.Input)
	if err != nil {
		return calculationRow{}, fmt.Errorf("marshal input: %w", err)
	}
	res, err := json.Marshal(c.Result)
	if err != nil {
		return calculationRow{}, fmt.Errorf("marshal result: %w", err)
	}
	return calculationRow{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Input:     in,
		Result:    res,
	}, nil
}

func fromRow(row calculationRow) (calculations.Calculation, error) {
	c := calculations.Calculation{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal(row.Input, &c.Input); err != nil {
		return calculations.Calculation{}, fmt.Errorf("unmarshal input: %w", err)
	}
	var res pk.Result
	if err := json.Unmarshal(row.Result, &res); err != nil {
		return calculations.Calculation{}, fmt.Errorf("unmarshal result: %w", err)
	}
	c.Result = res
	return c, nil
}
