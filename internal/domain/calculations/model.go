package calculations

import (
	"time"

	"pk-dosing-form/internal/domain/pk"
)

// Calculation es un envío del formulario ya calculado.
type Calculation struct {
	ID        string
	CreatedAt time.Time

	Input  pk.Input
	Result pk.Result
}
