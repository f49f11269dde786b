package category

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Group cantidad de vistas de una categoría.
type Group struct {
	Definition Definition
	Count      int
	Percentage decimal.Decimal // sobre el total, 2 decimales
}

// Summary agrupación de una colección por categoría en una dimensión.
// Total == suma(Groups.Count) + Uncategorized.
type Summary struct {
	Dimension        Dimension
	Total            int
	Groups           []Group // en orden de la taxonomía; incluye categorías con 0
	Uncategorized    int
	UncategorizedPct decimal.Decimal
}

// Summarize agrupa las vistas por clave de la dimensión. Las vistas sin valor
// cuentan en Uncategorized y en ningún grupo. Hace panic si un valor trae una
// clave ajena a la dimensión en t: las vistas salieron de otra taxonomía.
func Summarize(t *Taxonomy, views []View, d Dimension) Summary {
	counts := make(map[Key]int)
	uncategorized := 0
	for _, v := range views {
		val, ok := v.Value(d)
		if !ok {
			uncategorized++
			continue
		}
		def := t.MustLookup(val.Key)
		if def.Dimension() != d {
			panic(fmt.Errorf("resumen %s: %s: %w", d, val.Key, ErrUnknownCategory))
		}
		counts[val.Key]++
	}
	total := len(views)
	defs := t.Definitions(d)
	groups := make([]Group, 0, len(defs))
	for _, def := range defs {
		n := counts[def.Key]
		groups = append(groups, Group{Definition: def, Count: n, Percentage: percentage(n, total)})
	}
	return Summary{
		Dimension:        d,
		Total:            total,
		Groups:           groups,
		Uncategorized:    uncategorized,
		UncategorizedPct: percentage(uncategorized, total),
	}
}

// SummarizeAll resumen de todas las dimensiones en orden de evaluación.
func SummarizeAll(t *Taxonomy, views []View) []Summary {
	out := make([]Summary, 0, len(dimensionOrder))
	for _, d := range dimensionOrder {
		out = append(out, Summarize(t, views, d))
	}
	return out
}

func percentage(n, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
}
