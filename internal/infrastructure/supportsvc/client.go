// Package supportsvc adaptador HTTP del backend de support services.
//
// Contrato (JSON, autenticación Bearer):
//
//	POST /v1/websites/validate    {website}                         -> {valid, reason, final_url, title}
//	POST /v1/column-mapping       {headers, sample_rows}            -> {mapping, confidence}
//	POST /v1/companies/search     {name, website, description, ...} -> {analysis_method, passed, summary, sources}
package supportsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/application/ports"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa SupportServices.
var _ ports.SupportServices = (*Client)(nil)

const maxResponseBytes = 256 * 1024

// Client adaptador sobre net/http. No reintenta; el use case impone el timeout por llamada.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout es el tope de red por request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type validateRequest struct {
	Website string `json:"website"`
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason"`
	FinalURL string `json:"final_url"`
	Title    string `json:"title"`
}

type mappingRequest struct {
	Headers    []string   `json:"headers"`
	SampleRows [][]string `json:"sample_rows"`
}

type mappingResponse struct {
	Mapping    map[string]string  `json:"mapping"`
	Confidence map[string]float64 `json:"confidence"`
}

type searchRequest struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
	Query       string `json:"query,omitempty"`
}

type searchResponse struct {
	AnalysisMethod string   `json:"analysis_method"`
	Passed         *bool    `json:"passed"`
	Summary        string   `json:"summary"`
	Sources        []string `json:"sources"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ValidateWebsite pide al backend validar el sitio.
func (c *Client) ValidateWebsite(ctx context.Context, website string) (*entity.WebsiteValidation, error) {
	var out validateResponse
	if err := c.post(ctx, "/v1/websites/validate", validateRequest{Website: website}, &out); err != nil {
		return nil, err
	}
	return &entity.WebsiteValidation{
		Valid:    out.Valid,
		Reason:   out.Reason,
		FinalURL: out.FinalURL,
		Title:    out.Title,
	}, nil
}

// SuggestColumnMapping pide el mapeo de columnas sugerido.
func (c *Client) SuggestColumnMapping(ctx context.Context, headers []string, sampleRows [][]string) (*dto.ColumnMappingResponse, error) {
	if sampleRows == nil {
		sampleRows = [][]string{}
	}
	var out mappingResponse
	if err := c.post(ctx, "/v1/column-mapping", mappingRequest{Headers: headers, SampleRows: sampleRows}, &out); err != nil {
		return nil, err
	}
	return &dto.ColumnMappingResponse{Mapping: dto.ColumnMapping(out.Mapping), Confidence: out.Confidence}, nil
}

// SearchCompany pide el análisis por búsqueda web de la empresa.
func (c *Client) SearchCompany(ctx context.Context, company *entity.Company, query string) (*entity.SearchedCompanyData, error) {
	req := searchRequest{
		Name:        company.Name,
		Website:     company.Website,
		Description: company.Description,
		Country:     company.Country,
		Query:       query,
	}
	var out searchResponse
	if err := c.post(ctx, "/v1/companies/search", req, &out); err != nil {
		return nil, err
	}
	return &entity.SearchedCompanyData{
		AnalysisMethod: out.AnalysisMethod,
		Passed:         out.Passed,
		Summary:        out.Summary,
		Sources:        out.Sources,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("support: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("support: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("support: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("support: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("support: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if jsonErr := json.Unmarshal(raw, &e); jsonErr == nil && (e.Message != "" || e.Error != "") {
			return fmt.Errorf("support: %s HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(e.Error+" "+e.Message))
		}
		return fmt.Errorf("support: %s HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("support: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}
