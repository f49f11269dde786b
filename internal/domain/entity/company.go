package entity

import "time"

// Estados de una ejecución contra support services (validación de sitio, búsqueda web).
const (
	RunPending    = "pending"
	RunInProgress = "in_progress"
	RunCompleted  = "completed"
	RunFailed     = "failed"
)

// Métodos de análisis que reporta la búsqueda web.
const (
	AnalysisWebsite  = "WEBSITE"
	AnalysisDatabase = "DATABASE"
	AnalysisBoth     = "BOTH"
)

// Company es una fila del dataset de empresas de un benchmark.
// WebsiteValidation y SearchedData son nil hasta que el proceso correspondiente se ejecuta.
type Company struct {
	ID                string
	BenchmarkID       string
	Name              string
	Website           string
	Description       string
	Country           string
	RawData           map[string]string // columnas originales del archivo importado
	WebsiteValidation *WebsiteValidation
	SearchedData      *SearchedCompanyData
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WebsiteValidation resultado de validar el sitio web de la empresa.
type WebsiteValidation struct {
	Status    string    `json:"status"` // ver constantes Run*
	Valid     bool      `json:"valid"`
	Reason    string    `json:"reason,omitempty"`
	FinalURL  string    `json:"final_url,omitempty"`
	Title     string    `json:"title,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// SearchedCompanyData resultado del análisis por búsqueda web.
// Passed es nil mientras la búsqueda no haya resuelto.
type SearchedCompanyData struct {
	Status         string    `json:"status"`
	AnalysisMethod string    `json:"analysis_method,omitempty"` // WEBSITE, DATABASE, BOTH
	Passed         *bool     `json:"passed,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	Sources        []string  `json:"sources,omitempty"`
	SearchedAt     time.Time `json:"searched_at"`
}
