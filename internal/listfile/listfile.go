// Package listfile handles the shopping-list file format: a plain JSON
// array of cart lines, exported with a dated filename and validated
// structurally on import.
package listfile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chesuper/engine/internal/domain"
)

// filenamePattern embeds the export date, e.g. mi_lista_che_super_2026-09-01.json
const filenamePattern = "mi_lista_che_super_%s.json"

// Export serializes the cart lines verbatim as indented JSON
func Export(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.MarshalIndent(lines, "", "  ")
}

// Filename returns the export filename for the given date
func Filename(now time.Time) string {
	return fmt.Sprintf(filenamePattern, now.Format("2006-01-02"))
}

// rawRecord mirrors one imported record with just enough typing to run the
// structural check. Quantity uses json.Number so a fractional value can be
// told apart from an integer one.
type rawRecord struct {
	EAN      *string      `json:"ean"`
	Nombre   *string      `json:"nombre"`
	Marca    string       `json:"marca"`
	Quantity *json.Number `json:"quantity"`
}

// Parse validates an imported list and converts it to cart lines.
// A file is accepted only if it is a JSON array whose every record carries
// ean, nombre and an integer quantity; anything else returns
// ErrInvalidCartFormat. EANs unknown to the current catalog are kept.
func Parse(data []byte) ([]domain.CartLine, error) {
	var records []rawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCartFormat, err)
	}

	lines := make([]domain.CartLine, 0, len(records))
	for i, rec := range records {
		if rec.EAN == nil || rec.Nombre == nil || rec.Quantity == nil {
			return nil, fmt.Errorf("%w: record %d is missing a required field", domain.ErrInvalidCartFormat, i)
		}
		qty, err := rec.Quantity.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d quantity is not an integer", domain.ErrInvalidCartFormat, i)
		}
		lines = append(lines, domain.CartLine{
			EAN:      *rec.EAN,
			Nombre:   *rec.Nombre,
			Marca:    rec.Marca,
			Quantity: int(qty),
		})
	}
	return lines, nil
}
