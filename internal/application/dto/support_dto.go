package dto

// ColumnMappingRequest encabezados y filas de muestra del archivo a importar.
type ColumnMappingRequest struct {
	Headers    []string   `json:"headers" validate:"required,min=1,max=200"`
	SampleRows [][]string `json:"sample_rows" validate:"max=20"`
}

// ColumnMappingResponse mapeo sugerido por support services.
type ColumnMappingResponse struct {
	Mapping    ColumnMapping      `json:"mapping"`
	Confidence map[string]float64 `json:"confidence,omitempty"`
	Unmapped   []string           `json:"unmapped,omitempty"`
}

// WebSearchRequest parámetros opcionales de la búsqueda web.
type WebSearchRequest struct {
	Query string `json:"query" validate:"omitempty,max=500"`
}

// BatchRunResponse resultado de una corrida en lote sobre el dataset.
type BatchRunResponse struct {
	Processed int      `json:"processed"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}
