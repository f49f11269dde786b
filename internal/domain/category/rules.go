package category

import (
	"strings"

	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// Descripciones de las fallas de la dimensión SOURCE_USED.
const (
	DescWebsiteInsufficient     = "Website was not sufficient"
	DescDescriptionInsufficient = "Description was not sufficient"
	DescBothInsufficient        = "Neither website nor description was sufficient"
)

// DefaultCategorizers reglas del producto, en orden de evaluación de dimensiones.
// Dentro de cada lista el orden es la prioridad: los casos especiales van primero.
func DefaultCategorizers(t *Taxonomy) []Categorizer {
	return []Categorizer{
		{Dimension: DimensionInput, Rules: InputRules(t)},
		{Dimension: DimensionWebsite, Rules: WebsiteRules(t)},
		{Dimension: DimensionWebSearch, Rules: WebSearchRules(t)},
		{Dimension: DimensionSourceUsed, Rules: SourceUsedRules(t)},
	}
}

// InputRules estado de carga de la fila.
func InputRules(t *Taxonomy) []Rule {
	missing := t.MustLookup(KeyInputMissingName)
	isNew := t.MustLookup(KeyInputNew)
	ready := t.MustLookup(KeyInputReady)
	return []Rule{
		func(s Subject) (Value, bool) {
			if strings.TrimSpace(s.Company.Name) == "" {
				return missing.ToValue(), true
			}
			return Value{}, false
		},
		func(s Subject) (Value, bool) {
			c := s.Company
			if strings.TrimSpace(c.Website) == "" && c.WebsiteValidation == nil && c.SearchedData == nil {
				return isNew.ToValue(), true
			}
			return Value{}, false
		},
		func(Subject) (Value, bool) { return ready.ToValue(), true },
	}
}

// WebsiteRules validez del sitio web.
func WebsiteRules(t *Taxonomy) []Rule {
	notValidated := t.MustLookup(KeyWebsiteNotValidated)
	pending := t.MustLookup(KeyWebsitePending)
	valid := t.MustLookup(KeyWebsiteValid)
	invalid := t.MustLookup(KeyWebsiteInvalid)
	failed := t.MustLookup(KeyWebsiteError)
	return []Rule{
		func(s Subject) (Value, bool) {
			if s.Company.WebsiteValidation == nil {
				return notValidated.ToValue(), true
			}
			return Value{}, false
		},
		func(s Subject) (Value, bool) {
			switch s.Company.WebsiteValidation.Status {
			case entity.RunPending, entity.RunInProgress:
				return pending.ToValue(), true
			}
			return Value{}, false
		},
		func(s Subject) (Value, bool) {
			wv := s.Company.WebsiteValidation
			if wv.Status != entity.RunCompleted {
				return Value{}, false
			}
			if wv.Valid {
				return valid.ToValue(WithDescription(wv.FinalURL)), true
			}
			return invalid.ToValue(WithDescription(wv.Reason)), true
		},
		func(s Subject) (Value, bool) {
			wv := s.Company.WebsiteValidation
			if wv.Status == entity.RunFailed {
				return failed.ToValue(WithDescription(wv.Reason)), true
			}
			return Value{}, false
		},
	}
}

// WebSearchRules resultado de la búsqueda web. Solo PASSED y FAILED informan Passed.
func WebSearchRules(t *Taxonomy) []Rule {
	notStarted := t.MustLookup(KeyWebSearchNotStarted)
	inProgress := t.MustLookup(KeyWebSearchInProgress)
	passed := t.MustLookup(KeyWebSearchPassed)
	failed := t.MustLookup(KeyWebSearchFailed)
	errored := t.MustLookup(KeyWebSearchError)
	return []Rule{
		func(s Subject) (Value, bool) {
			if s.Company.SearchedData == nil {
				return notStarted.ToValue(), true
			}
			return Value{}, false
		},
		func(s Subject) (Value, bool) {
			switch s.Company.SearchedData.Status {
			case entity.RunPending, entity.RunInProgress:
				return inProgress.ToValue(), true
			}
			return Value{}, false
		},
		func(s Subject) (Value, bool) {
			sd := s.Company.SearchedData
			if sd.Status != entity.RunCompleted || sd.Passed == nil {
				return Value{}, false
			}
			if *sd.Passed {
				return passed.ToValue(WithPassed(true), WithDescription(sd.Summary)), true
			}
			return failed.ToValue(WithPassed(false), WithDescription(sd.Summary)), true
		},
		func(s Subject) (Value, bool) {
			if s.Company.SearchedData.Status == entity.RunFailed {
				return errored.ToValue(WithDescription(s.Company.SearchedData.Summary)), true
			}
			return Value{}, false
		},
	}
}

// SourceUsedRules fuente que sirvió para el análisis. Depende del valor WEBSEARCH.
func SourceUsedRules(t *Taxonomy) []Rule {
	notReady := t.MustLookup(KeySourceNotReady)
	website := t.MustLookup(KeySourceWebsite)
	description := t.MustLookup(KeySourceDescription)
	failed := t.MustLookup(KeySourceFailed)
	return []Rule{
		func(s Subject) (Value, bool) {
			ws, ok := s.Value(DimensionWebSearch)
			if !ok || ws.Passed == nil {
				return notReady.ToValue(), true
			}
			return Value{}, false
		},
		func(s Subject) (Value, bool) {
			ws, _ := s.Value(DimensionWebSearch)
			passed := *ws.Passed
			method := ""
			if s.Company.SearchedData != nil {
				method = strings.ToUpper(s.Company.SearchedData.AnalysisMethod)
			}
			switch method {
			case entity.AnalysisWebsite:
				if passed {
					return website.ToValue(), true
				}
				return failed.ToValue(WithDescription(DescWebsiteInsufficient)), true
			case entity.AnalysisDatabase:
				if passed {
					return description.ToValue(), true
				}
				return failed.ToValue(WithDescription(DescDescriptionInsufficient)), true
			case entity.AnalysisBoth:
				// BOTH se reporta como FAILED aun con búsqueda aprobada.
				return failed.ToValue(WithDescription(DescBothInsufficient)), true
			}
			return Value{}, false
		},
	}
}
