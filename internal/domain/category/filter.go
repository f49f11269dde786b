package category

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// OperatorContainsAny condición disyuntiva: la celda debe coincidir con alguno de los valores.
const OperatorContainsAny = "contains_any"

// Columnas de la grilla que leen campos de la empresa. Cualquier otra columna que
// no sea de dimensión se busca en RawData.
const (
	ColumnName        = "name"
	ColumnWebsite     = "website"
	ColumnDescription = "description"
	ColumnCountry     = "country"
)

// ErrInvalidCondition condición que el estado de filtros no sabe evaluar.
var ErrInvalidCondition = errors.New("condición de filtro inválida")

// Condition condición de filtro sobre una columna de la grilla.
type Condition struct {
	Column   string   `json:"column"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

type savedColumn struct {
	conditions []Condition
	present    bool
}

// FilterState estado transitorio de filtros de una grilla. Lo posee quien monta la
// grilla (o el request); se pasa explícitamente a los toggles y nunca se persiste.
type FilterState struct {
	conditions map[string][]Condition
	active     map[Dimension]bool
	saved      map[Dimension]savedColumn
}

// NewFilterState crea un estado sin filtros.
func NewFilterState() *FilterState {
	return &FilterState{
		conditions: make(map[string][]Condition),
		active:     make(map[Dimension]bool),
		saved:      make(map[Dimension]savedColumn),
	}
}

// IsFiltered informa si el toggle de la dimensión está aplicado.
func (f *FilterState) IsFiltered(d Dimension) bool { return f.active[d] }

// AddCondition agrega una condición manual sobre una columna. Operator vacío se
// toma como contains_any; cualquier otro operador se rechaza.
func (f *FilterState) AddCondition(c Condition) error {
	c.Column = strings.TrimSpace(c.Column)
	if c.Column == "" {
		return fmt.Errorf("%w: columna vacía", ErrInvalidCondition)
	}
	if c.Operator == "" {
		c.Operator = OperatorContainsAny
	}
	if c.Operator != OperatorContainsAny {
		return fmt.Errorf("%w: operador %q", ErrInvalidCondition, c.Operator)
	}
	c.Values = append([]string(nil), c.Values...)
	f.conditions[c.Column] = append(f.conditions[c.Column], c)
	return nil
}

// Conditions copia de las condiciones de una columna.
func (f *FilterState) Conditions(column string) []Condition {
	src, ok := f.conditions[column]
	if !ok {
		return nil
	}
	out := make([]Condition, len(src))
	copy(out, src)
	return out
}

// Columns columnas con al menos una condición, ordenadas.
func (f *FilterState) Columns() []string {
	cols := make([]string, 0, len(f.conditions))
	for col := range f.conditions {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Match evalúa la vista contra todas las condiciones de todas las columnas: AND
// entre condiciones, OR entre los valores de una misma condición.
func (f *FilterState) Match(v View) bool {
	for column, conds := range f.conditions {
		cell := CellValue(v, column)
		for _, c := range conds {
			if !containsAny(c.Values, cell) {
				return false
			}
		}
	}
	return true
}

// CellValue valor de la celda de la vista en la columna: la etiqueta de la
// categoría en columnas de dimensión, el campo de la empresa o su RawData en el
// resto. "" si la celda está vacía.
func CellValue(v View, column string) string {
	if d, ok := dimensionByColumn[column]; ok {
		if val, ok := v.Value(d); ok {
			return val.Label
		}
		return ""
	}
	c := v.Company
	if c == nil {
		return ""
	}
	switch column {
	case ColumnName:
		return c.Name
	case ColumnWebsite:
		return c.Website
	case ColumnDescription:
		return c.Description
	case ColumnCountry:
		return c.Country
	}
	return c.RawData[column]
}

// Filter devuelve las vistas que cumplen el estado, preservando el orden.
func (f *FilterState) Filter(views []View) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// containsAny compara sin distinguir mayúsculas ni espacios de borde. Una celda
// vacía solo coincide con un valor vacío explícito.
func containsAny(values []string, cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), cell) {
			return true
		}
	}
	return false
}

// Toggle aplica o retira un filtro de categoría sobre el estado recibido.
type Toggle func(state *FilterState)

// CreateFilterToggle arma el toggle de la categoría def en la dimensión d. Los
// valores del filtro son las etiquetas distintas de las vistas cuya clave en d es
// def.Key. Aplicar y luego retirar restaura exactamente las condiciones previas
// de la columna.
func CreateFilterToggle(all []View, d Dimension, def Definition) Toggle {
	return newToggle(d, distinctLabels(all, d, def.Key))
}

func newToggle(d Dimension, values []string) Toggle {
	column := d.Column()
	return func(state *FilterState) {
		if state.active[d] {
			prev := state.saved[d]
			if prev.present {
				state.conditions[column] = prev.conditions
			} else {
				delete(state.conditions, column)
			}
			delete(state.saved, d)
			state.active[d] = false
			return
		}
		current, present := state.conditions[column]
		snapshot := make([]Condition, len(current))
		copy(snapshot, current)
		state.saved[d] = savedColumn{conditions: snapshot, present: present}

		next := make([]Condition, len(current), len(current)+1)
		copy(next, current)
		vals := make([]string, len(values))
		copy(vals, values)
		state.conditions[column] = append(next, Condition{Column: column, Operator: OperatorContainsAny, Values: vals})
		state.active[d] = true
	}
}

func distinctLabels(all []View, d Dimension, key Key) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, v := range all {
		val, ok := v.Value(d)
		if !ok || val.Key != key {
			continue
		}
		if _, dup := seen[val.Label]; dup {
			continue
		}
		seen[val.Label] = struct{}{}
		labels = append(labels, val.Label)
	}
	sort.Strings(labels)
	return labels
}

// Projector precalcula las etiquetas por clave de una colección para armar badges
// y toggles sin recorrerla por cada celda.
type Projector struct {
	labels map[Key][]string
}

// NewProjector indexa la colección completa.
func NewProjector(all []View) *Projector {
	sets := make(map[Key]map[string]struct{})
	for _, v := range all {
		for _, val := range v.Values {
			set, ok := sets[val.Key]
			if !ok {
				set = make(map[string]struct{})
				sets[val.Key] = set
			}
			set[val.Label] = struct{}{}
		}
	}
	labels := make(map[Key][]string, len(sets))
	for k, set := range sets {
		list := make([]string, 0, len(set))
		for l := range set {
			list = append(list, l)
		}
		sort.Strings(list)
		labels[k] = list
	}
	return &Projector{labels: labels}
}

// Toggle equivalente a CreateFilterToggle sobre la colección indexada.
func (p *Projector) Toggle(d Dimension, def Definition) Toggle {
	return newToggle(d, p.labels[def.Key])
}

// Badge arma el badge de la vista en la dimensión d. ok=false si la vista no
// tiene valor en esa dimensión.
func (p *Projector) Badge(v View, d Dimension, state *FilterState) (Badge, bool) {
	val, ok := v.Value(d)
	if !ok {
		return Badge{}, false
	}
	filtered := state != nil && state.IsFiltered(d)
	return val.Category.CreateBadge(val.Label, val.Description, p.Toggle(d, val.Category), filtered), true
}

// Badges todos los badges de la vista, por dimensión.
func (p *Projector) Badges(v View, state *FilterState) map[Dimension]Badge {
	out := make(map[Dimension]Badge, len(v.Values))
	for _, d := range dimensionOrder {
		if b, ok := p.Badge(v, d, state); ok {
			out[d] = b
		}
	}
	return out
}
