// Package category contiene el motor de derivación de categorías: la taxonomía
// estática de estados por dimensión, los categorizadores (listas ordenadas de
// reglas) y la proyección de cada valor a badges y filtros de la grilla.
//
// Todo el paquete es puro: no hace I/O ni guarda estado global mutable, por lo que
// las definiciones se comparten sin locks entre requests concurrentes.
package category

// Color variante visual de un badge.
type Color string

// Colores soportados por el frontend.
const (
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorGray   Color = "gray"
	ColorOrange Color = "orange"
)

// Valid informa si el color pertenece a la paleta.
func (c Color) Valid() bool {
	switch c {
	case ColorGreen, ColorRed, ColorYellow, ColorBlue, ColorPurple, ColorPink, ColorGray, ColorOrange:
		return true
	}
	return false
}

// Status estado de flujo asociado opcionalmente a una categoría.
type Status string

// Estados de flujo. StatusNone indica que la categoría no tiene estado.
const (
	StatusNone       Status = ""
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Icon referencia simbólica a un ícono del frontend.
type Icon string

// Íconos usados por la taxonomía.
const (
	IconCircle      Icon = "circle"
	IconCircleCheck Icon = "circle-check"
	IconCircleX     Icon = "circle-x"
	IconClock       Icon = "clock"
	IconLoader      Icon = "loader"
	IconAlert       Icon = "alert-triangle"
	IconGlobe       Icon = "globe"
	IconFileText    Icon = "file-text"
	IconSearch      Icon = "search"
	IconBan         Icon = "ban"
)

// Definition describe una categoría dentro de una dimensión. Es inmutable: se
// construye una sola vez al cargar la taxonomía.
type Definition struct {
	Label  string `json:"label"`
	Color  Color  `json:"color"`
	Key    Key    `json:"category_key"`
	Icon   Icon   `json:"icon"`
	Status Status `json:"status,omitempty"`
}

// Dimension devuelve la dimensión a la que pertenece la definición.
func (d Definition) Dimension() Dimension { return d.Key.Dimension() }

// Value resultado derivado de categorizar una entidad en una dimensión.
// Se recalcula en cada pasada; nunca se persiste.
type Value struct {
	Category    Definition `json:"category"`
	Label       string     `json:"label"`
	Key         Key        `json:"category_key"`
	Description string     `json:"description,omitempty"`
	// Passed solo lo informan dimensiones con resultado binario (WEBSEARCH).
	Passed *bool `json:"passed,omitempty"`
}

// ValueOption modifica el snapshot producido por ToValue.
type ValueOption func(*Value)

// WithDescription sobrescribe la descripción del valor.
func WithDescription(description string) ValueOption {
	return func(v *Value) { v.Description = description }
}

// WithPassed adjunta el resultado binario de la dimensión.
func WithPassed(passed bool) ValueOption {
	return func(v *Value) {
		p := passed
		v.Passed = &p
	}
}

// ToValue produce un Value a partir de la definición.
func (d Definition) ToValue(opts ...ValueOption) Value {
	v := Value{Category: d, Label: d.Label, Key: d.Key}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// Variantes visuales del badge.
const (
	VariantDefault    = "default"
	VariantEmphasized = "emphasized"
)

// Badge descriptor renderizable de un valor de categoría.
type Badge struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Color       Color  `json:"color"`
	Variant     string `json:"variant"`
	Icon        Icon   `json:"icon"`
	Key         Key    `json:"category_key"`
	Filtered    bool   `json:"filtered"`
	toggle      Toggle
}

// Toggle aplica o retira el filtro asociado al badge sobre el estado dado.
// Es no-op si el badge se creó sin toggle.
func (b Badge) Toggle(state *FilterState) {
	if b.toggle != nil {
		b.toggle(state)
	}
}

// CreateBadge arma el badge de la definición. isFiltered marca la variante enfatizada.
func (d Definition) CreateBadge(label, description string, toggle Toggle, isFiltered bool) Badge {
	variant := VariantDefault
	if isFiltered {
		variant = VariantEmphasized
	}
	if label == "" {
		label = d.Label
	}
	return Badge{
		Label:       label,
		Description: description,
		Color:       d.Color,
		Variant:     variant,
		Icon:        d.Icon,
		Key:         d.Key,
		Filtered:    isFiltered,
		toggle:      toggle,
	}
}

// IconButton versión compacta (solo ícono) para celdas angostas.
type IconButton struct {
	Icon     Icon   `json:"icon"`
	Color    Color  `json:"color"`
	Tooltip  string `json:"tooltip"`
	Key      Key    `json:"category_key"`
	EntityID string `json:"entity_id"`
}

// CreateIconButton arma el botón compacto para la entidad indicada.
func (d Definition) CreateIconButton(entityID string) IconButton {
	return IconButton{
		Icon:     d.Icon,
		Color:    d.Color,
		Tooltip:  d.Label,
		Key:      d.Key,
		EntityID: entityID,
	}
}
