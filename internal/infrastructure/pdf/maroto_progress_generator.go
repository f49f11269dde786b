// Package pdf implementa el reporte de progreso de un benchmark.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Benchmark     │  Estado + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Modelo / Puntaje objetivo / Total de empresas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR DIMENSIÓN: Categoría | Color | Cantidad | %             │
//	│                 ... + fila "Sin categoría"                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/benchmark-hub/internal/application/report"
	"github.com/jhoicas/benchmark-hub/internal/domain/category"
)

var _ report.ProgressPDFGenerator = (*MarotoProgressGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// badgeColors equivalente RGB de la paleta de badges.
var badgeColors = map[category.Color]*props.Color{
	category.ColorGreen:  {Red: 22, Green: 163, Blue: 74},
	category.ColorRed:    {Red: 220, Green: 38, Blue: 38},
	category.ColorYellow: {Red: 202, Green: 138, Blue: 4},
	category.ColorBlue:   {Red: 37, Green: 99, Blue: 235},
	category.ColorPurple: {Red: 147, Green: 51, Blue: 234},
	category.ColorPink:   {Red: 219, Green: 39, Blue: 119},
	category.ColorGray:   {Red: 107, Green: 114, Blue: 128},
	category.ColorOrange: {Red: 234, Green: 88, Blue: 12},
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoProgressGenerator implementa report.ProgressPDFGenerator usando Maroto v2.
type MarotoProgressGenerator struct{}

// NewMarotoProgressGenerator construye el generador.
func NewMarotoProgressGenerator() *MarotoProgressGenerator { return &MarotoProgressGenerator{} }

// GenerateProgressPDF genera el PDF y devuelve sus bytes.
func (g *MarotoProgressGenerator) GenerateProgressPDF(_ context.Context, data report.ProgressData) ([]byte, error) {
	if data.Benchmark == nil {
		return nil, fmt.Errorf("pdf: benchmark requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		WithAuthor("benchmark-hub", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, s := range data.Summaries {
		m.AddRows(dimensionTitleRow(s))
		m.AddRows(tableHeaderRow())
		m.AddRows(groupRows(s)...)
		m.AddRows(row.New(4))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + benchmark (izq) y estado + fecha (der).
func headerRow(data report.ProgressData) core.Row {
	b := data.Benchmark
	return row.New(18).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(b.Name, props.Text{
				Size: 10, Top: 9,
			}),
		),
		col.New(4).Add(
			text.New("ESTADO: "+b.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// detailsRow: modelo evaluado, puntaje objetivo y tamaño del dataset.
func detailsRow(data report.ProgressData) core.Row {
	b := data.Benchmark
	total := 0
	if len(data.Summaries) > 0 {
		total = data.Summaries[0].Total
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL BENCHMARK", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Modelo: %s   |   Puntaje objetivo: %s   |   Empresas: %d",
				nonEmpty(b.ModelName, "-"),
				b.TargetScore.StringFixed(2),
				total,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func dimensionTitleRow(s category.Summary) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(string(s.Dimension), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de categorías.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Categoría", 6, align.Left),
		h("Clave", 3, align.Left),
		h("Cantidad", 1, align.Right),
		h("%", 2, align.Right),
	)
}

// groupRows: una fila por categoría de la taxonomía más "Sin categoría".
func groupRows(s category.Summary) []core.Row {
	rows := make([]core.Row, 0, len(s.Groups)+1)
	for _, g := range s.Groups {
		rows = append(rows, dataRow(g.Definition.Label, string(g.Definition.Key), g.Count,
			g.Percentage.StringFixed(2), badgeColors[g.Definition.Color]))
	}
	rows = append(rows, dataRow("Sin categoría", "-", s.Uncategorized, s.UncategorizedPct.StringFixed(2), colorGray))
	return rows
}

func dataRow(label, key string, count int, pct string, color *props.Color) core.Row {
	if color == nil {
		color = colorGray
	}
	return row.New(6).Add(
		col.New(6).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Color: color,
		})),
		col.New(3).Add(text.New(key, props.Text{
			Size: 7, Top: 1, Left: 1, Color: colorGray,
		})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", count), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(pct+"%", props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Las categorías se derivan del estado actual de cada empresa al momento de generar el reporte.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
