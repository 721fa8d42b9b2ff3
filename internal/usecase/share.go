package usecase

import (
	"fmt"
	"strings"

	"github.com/chesuper/engine/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// esAR formats money the way the original UI did (1.234,56)
var esAR = message.NewPrinter(language.MustParse("es-AR"))

// formatMoney renders an amount with es-AR grouping and two decimals
func formatMoney(v float64) string {
	return esAR.Sprintf("%.2f", v)
}

// BuildShareSummary formats one store's comparison entry as a shareable
// shopping list: header, matched items, unavailable items and the total
// recalculated under the given pricing mode. Pure function of its inputs.
func BuildShareSummary(entry domain.ComparisonEntry, usePromos bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "¡Che! Te paso la lista para comprar en %s:\n\n", entry.Bandera)

	var total float64
	for _, item := range entry.Detalle {
		total += effectiveUnitPrice(item, usePromos) * float64(item.Quantity)
		fmt.Fprintf(&b, "• %s (x%d)\n", item.Nombre, item.Quantity)
	}
	for _, missing := range entry.NoEncontrados {
		fmt.Fprintf(&b, "• %s (NO DISPONIBLE)\n", missing.Nombre)
	}

	fmt.Fprintf(&b, "\nTotal estimado: $%s", formatMoney(total))
	b.WriteString("\n\nComparado con Che Súper!")
	return b.String()
}
