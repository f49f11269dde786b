package category

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCategory la clave no existe en la taxonomía (error de configuración).
var ErrUnknownCategory = errors.New("categoría desconocida")

// Dimension eje independiente de categorización de una empresa.
type Dimension string

// Dimensiones soportadas.
const (
	DimensionInput      Dimension = "INPUT"
	DimensionWebsite    Dimension = "WEBSITE"
	DimensionWebSearch  Dimension = "WEBSEARCH"
	DimensionSourceUsed Dimension = "SOURCE_USED"
)

// dimensionOrder orden de evaluación: una dimensión puede leer los valores de las anteriores.
var dimensionOrder = []Dimension{DimensionInput, DimensionWebsite, DimensionWebSearch, DimensionSourceUsed}

// dimensionColumns columna de la grilla sobre la que filtra cada dimensión.
var dimensionColumns = map[Dimension]string{
	DimensionInput:      "input_status",
	DimensionWebsite:    "website_status",
	DimensionWebSearch:  "websearch_status",
	DimensionSourceUsed: "source_used",
}

// dimensionByColumn índice inverso de dimensionColumns.
var dimensionByColumn = func() map[string]Dimension {
	out := make(map[string]Dimension, len(dimensionColumns))
	for d, col := range dimensionColumns {
		out[col] = d
	}
	return out
}()

// Dimensions devuelve las dimensiones en orden de evaluación.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensionOrder))
	copy(out, dimensionOrder)
	return out
}

// Valid informa si la dimensión es conocida.
func (d Dimension) Valid() bool {
	_, ok := dimensionColumns[d]
	return ok
}

// Column nombre de la columna de la grilla asociada.
func (d Dimension) Column() string { return dimensionColumns[d] }

// ParseDimension valida un nombre de dimensión (case-insensitive).
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("dimensión %q: %w", s, ErrUnknownCategory)
	}
	return d, nil
}

// Key identificador estable de una categoría: "<DIMENSION>.<CODE>".
type Key string

// NewKey arma la clave de una categoría a partir de su posición en la taxonomía.
func NewKey(d Dimension, code string) Key {
	return Key(string(d) + "." + code)
}

// Dimension parte de la clave que identifica la dimensión.
func (k Key) Dimension() Dimension {
	if i := strings.IndexByte(string(k), '.'); i > 0 {
		return Dimension(k[:i])
	}
	return ""
}

// Code parte local de la clave.
func (k Key) Code() string {
	if i := strings.IndexByte(string(k), '.'); i >= 0 {
		return string(k[i+1:])
	}
	return ""
}

// Claves referenciadas por los categorizadores.
var (
	KeyInputMissingName = NewKey(DimensionInput, "MISSING_NAME")
	KeyInputNew         = NewKey(DimensionInput, "NEW")
	KeyInputReady       = NewKey(DimensionInput, "READY")

	KeyWebsiteNotValidated = NewKey(DimensionWebsite, "NOT_VALIDATED")
	KeyWebsitePending      = NewKey(DimensionWebsite, "PENDING")
	KeyWebsiteValid        = NewKey(DimensionWebsite, "VALID")
	KeyWebsiteInvalid      = NewKey(DimensionWebsite, "INVALID")
	KeyWebsiteError        = NewKey(DimensionWebsite, "ERROR")

	KeyWebSearchNotStarted = NewKey(DimensionWebSearch, "NOT_STARTED")
	KeyWebSearchInProgress = NewKey(DimensionWebSearch, "IN_PROGRESS")
	KeyWebSearchPassed     = NewKey(DimensionWebSearch, "PASSED")
	KeyWebSearchFailed     = NewKey(DimensionWebSearch, "FAILED")
	KeyWebSearchError      = NewKey(DimensionWebSearch, "ERROR")

	KeySourceNotReady    = NewKey(DimensionSourceUsed, "NOT_READY")
	KeySourceWebsite     = NewKey(DimensionSourceUsed, "WEBSITE")
	KeySourceDescription = NewKey(DimensionSourceUsed, "DESCRIPTION")
	KeySourceFailed      = NewKey(DimensionSourceUsed, "FAILED")
)

// Entry fila de configuración de la taxonomía.
type Entry struct {
	Dimension Dimension
	Code      string
	Label     string
	Color     Color
	Icon      Icon
	Status    Status
}

// DefaultEntries taxonomía estática del producto. El orden dentro de cada
// dimensión es el orden de presentación en la UI.
var DefaultEntries = []Entry{
	{DimensionInput, "MISSING_NAME", "Missing name", ColorRed, IconAlert, StatusFailed},
	{DimensionInput, "NEW", "New", ColorBlue, IconCircle, StatusPending},
	{DimensionInput, "READY", "Ready", ColorGreen, IconCircleCheck, StatusCompleted},

	{DimensionWebsite, "NOT_VALIDATED", "Not validated", ColorGray, IconCircle, StatusPending},
	{DimensionWebsite, "PENDING", "Validating", ColorYellow, IconLoader, StatusInProgress},
	{DimensionWebsite, "VALID", "Valid website", ColorGreen, IconGlobe, StatusCompleted},
	{DimensionWebsite, "INVALID", "Invalid website", ColorRed, IconCircleX, StatusCompleted},
	{DimensionWebsite, "ERROR", "Validation error", ColorOrange, IconAlert, StatusFailed},

	{DimensionWebSearch, "NOT_STARTED", "Not started", ColorGray, IconCircle, StatusPending},
	{DimensionWebSearch, "IN_PROGRESS", "Searching", ColorYellow, IconLoader, StatusInProgress},
	{DimensionWebSearch, "PASSED", "Passed", ColorGreen, IconCircleCheck, StatusCompleted},
	{DimensionWebSearch, "FAILED", "Failed", ColorRed, IconCircleX, StatusCompleted},
	{DimensionWebSearch, "ERROR", "Search error", ColorOrange, IconAlert, StatusFailed},

	{DimensionSourceUsed, "NOT_READY", "Not ready", ColorGray, IconClock, StatusNone},
	{DimensionSourceUsed, "WEBSITE", "Website", ColorBlue, IconGlobe, StatusNone},
	{DimensionSourceUsed, "DESCRIPTION", "Description", ColorPurple, IconFileText, StatusNone},
	{DimensionSourceUsed, "FAILED", "Failed", ColorRed, IconBan, StatusNone},
}

// Taxonomy tabla de definiciones indexada por Key, validada al construirse.
type Taxonomy struct {
	byKey map[Key]Definition
	byDim map[Dimension][]Definition
}

// NewTaxonomy construye y valida la taxonomía: claves únicas, dimensión conocida,
// código, etiqueta y color válidos.
func NewTaxonomy(entries []Entry) (*Taxonomy, error) {
	t := &Taxonomy{
		byKey: make(map[Key]Definition, len(entries)),
		byDim: make(map[Dimension][]Definition),
	}
	for i, e := range entries {
		if !e.Dimension.Valid() {
			return nil, fmt.Errorf("taxonomía[%d]: dimensión %q inválida", i, e.Dimension)
		}
		if e.Code == "" || strings.Contains(e.Code, ".") {
			return nil, fmt.Errorf("taxonomía[%d]: código %q inválido", i, e.Code)
		}
		if e.Label == "" {
			return nil, fmt.Errorf("taxonomía[%d]: etiqueta vacía", i)
		}
		if !e.Color.Valid() {
			return nil, fmt.Errorf("taxonomía[%d]: color %q inválido", i, e.Color)
		}
		key := NewKey(e.Dimension, e.Code)
		if _, dup := t.byKey[key]; dup {
			return nil, fmt.Errorf("taxonomía: clave duplicada %s", key)
		}
		def := Definition{Label: e.Label, Color: e.Color, Key: key, Icon: e.Icon, Status: e.Status}
		t.byKey[key] = def
		t.byDim[e.Dimension] = append(t.byDim[e.Dimension], def)
	}
	return t, nil
}

// MustNewTaxonomy igual que NewTaxonomy pero hace panic ante configuración inválida.
func MustNewTaxonomy(entries []Entry) *Taxonomy {
	t, err := NewTaxonomy(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup busca una definición por clave.
func (t *Taxonomy) Lookup(key Key) (Definition, error) {
	def, ok := t.byKey[key]
	if !ok {
		return Definition{}, fmt.Errorf("%s: %w", key, ErrUnknownCategory)
	}
	return def, nil
}

// MustLookup busca una definición y hace panic si no existe. Se usa al armar los
// categorizadores: una regla que apunta a una clave inexistente es un bug de build.
func (t *Taxonomy) MustLookup(key Key) Definition {
	def, err := t.Lookup(key)
	if err != nil {
		panic(err)
	}
	return def
}

// ParseKey valida un texto como clave existente (ej. "SOURCE_USED.FAILED").
func (t *Taxonomy) ParseKey(s string) (Key, error) {
	key := Key(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := t.Lookup(key); err != nil {
		return "", err
	}
	return key, nil
}

// Definitions devuelve las definiciones de una dimensión en orden de configuración.
func (t *Taxonomy) Definitions(d Dimension) []Definition {
	defs := t.byDim[d]
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

// Keys todas las claves, ordenadas.
func (t *Taxonomy) Keys() []Key {
	keys := make([]Key, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
