package listfile

import (
	"errors"
	"testing"
	"time"

	"github.com/chesuper/engine/internal/domain"
)

func TestFilename(t *testing.T) {
	now := time.Date(2026, time.September, 1, 15, 4, 5, 0, time.UTC)
	got := Filename(now)
	want := "mi_lista_che_super_2026-09-01.json"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestExportParseRoundTrip(t *testing.T) {
	lines := []domain.CartLine{
		{EAN: "7790000000001", Nombre: "Leche Entera", Marca: "La Serenísima", Quantity: 2},
		{EAN: "7790000000002", Nombre: "Pan Lactal", Marca: "Bimbo", Quantity: 1},
	}

	data, err := Export(lines)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(parsed) != len(lines) {
		t.Fatalf("len(parsed) = %d, want %d", len(parsed), len(lines))
	}
	for i := range lines {
		if parsed[i] != lines[i] {
			t.Errorf("parsed[%d] = %+v, want %+v", i, parsed[i], lines[i])
		}
	}
}

func TestExportEmptyCart(t *testing.T) {
	data, err := Export(nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Export(nil) = %q, want empty array", data)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantLen int
	}{
		{
			name:    "full records accepted",
			input:   `[{"ean":"1","nombre":"Leche","marca":"X","quantity":2}]`,
			wantLen: 1,
		},
		{
			name:    "marca is optional",
			input:   `[{"ean":"1","nombre":"Leche","quantity":2}]`,
			wantLen: 1,
		},
		{
			name:    "extra fields are tolerated",
			input:   `[{"ean":"1","nombre":"Leche","quantity":2,"precio":100}]`,
			wantLen: 1,
		},
		{
			name:    "empty array accepted",
			input:   `[]`,
			wantLen: 0,
		},
		{
			name:    "missing nombre and quantity rejected",
			input:   `[{"ean":"9"}]`,
			wantErr: true,
		},
		{
			name:    "missing ean rejected",
			input:   `[{"nombre":"Pan","quantity":1}]`,
			wantErr: true,
		},
		{
			name:    "fractional quantity rejected",
			input:   `[{"ean":"1","nombre":"Leche","quantity":1.5}]`,
			wantErr: true,
		},
		{
			name:    "non-array rejected",
			input:   `{"ean":"1"}`,
			wantErr: true,
		},
		{
			name:    "garbage rejected",
			input:   `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidCartFormat) {
					t.Fatalf("error = %v, want ErrInvalidCartFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(lines) != tt.wantLen {
				t.Errorf("len(lines) = %d, want %d", len(lines), tt.wantLen)
			}
		})
	}
}
