package category

import "github.com/jhoicas/benchmark-hub/internal/domain/entity"

// Subject entrada de una regla: la empresa y los valores ya derivados para las
// dimensiones evaluadas antes en la misma pasada.
type Subject struct {
	Company *entity.Company
	Values  map[Dimension]Value
}

// Value devuelve el valor ya derivado de otra dimensión.
func (s Subject) Value(d Dimension) (Value, bool) {
	v, ok := s.Values[d]
	return v, ok
}

// Rule regla pura de una dimensión. ok=false significa "no aplica"; la regla
// siguiente se evalúa solo en ese caso.
type Rule func(s Subject) (v Value, ok bool)

// Evaluate recorre las reglas en orden de declaración y devuelve el resultado de la
// primera que aplica. Sin coincidencias devuelve ok=false (sin categorizar).
// Un panic dentro de una regla no se recupera aquí.
func Evaluate(rules []Rule, s Subject) (Value, bool) {
	for _, rule := range rules {
		if v, ok := rule(s); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Categorizer lista ordenada de reglas para una dimensión.
type Categorizer struct {
	Dimension Dimension
	Rules     []Rule
}

// Evaluate aplica el categorizador al sujeto.
func (c Categorizer) Evaluate(s Subject) (Value, bool) {
	return Evaluate(c.Rules, s)
}

// View proyección de lectura de una empresa con sus valores derivados.
// Una dimensión sin coincidencia no aparece en Values.
type View struct {
	Company *entity.Company
	Values  map[Dimension]Value
}

// Value devuelve el valor derivado de la dimensión, si existe.
func (v View) Value(d Dimension) (Value, bool) {
	val, ok := v.Values[d]
	return val, ok
}

// Engine evalúa todos los categorizadores en orden de dependencia.
// No guarda estado mutable, se puede compartir entre goroutines.
type Engine struct {
	taxonomy     *Taxonomy
	categorizers []Categorizer
}

// NewEngine arma el motor con categorizadores explícitos. Las dimensiones se
// evalúan en el orden recibido.
func NewEngine(t *Taxonomy, categorizers ...Categorizer) *Engine {
	return &Engine{taxonomy: t, categorizers: categorizers}
}

// NewDefaultEngine arma el motor con la taxonomía y las reglas del producto.
// Hace panic si alguna regla referencia una clave inexistente.
func NewDefaultEngine() *Engine {
	t := MustNewTaxonomy(DefaultEntries)
	return NewEngine(t, DefaultCategorizers(t)...)
}

// Taxonomy taxonomía usada por el motor.
func (e *Engine) Taxonomy() *Taxonomy { return e.taxonomy }

// Categorize deriva todos los valores de la empresa.
func (e *Engine) Categorize(c *entity.Company) View {
	values := make(map[Dimension]Value, len(e.categorizers))
	s := Subject{Company: c, Values: values}
	for _, cat := range e.categorizers {
		if v, ok := cat.Evaluate(s); ok {
			values[cat.Dimension] = v
		}
	}
	return View{Company: c, Values: values}
}

// CategorizeAll deriva las vistas de una colección, preservando el orden.
func (e *Engine) CategorizeAll(companies []*entity.Company) []View {
	views := make([]View, 0, len(companies))
	for _, c := range companies {
		views = append(views, e.Categorize(c))
	}
	return views
}
