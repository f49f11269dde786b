// Package web sonda local de sitios web. Reemplaza la validación del backend de
// support services cuando no hay uno configurado (modo dev).
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jhoicas/benchmark-hub/internal/application/ports"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

var _ ports.WebsiteProbe = (*Probe)(nil)

// DefaultUserAgent agente enviado en cada request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; BenchmarkHub/1.0)"

const maxBodyBytes = 2 << 20

// Motivos de sitio inválido.
const (
	ReasonParked     = "parked domain"
	ReasonEmptyPage  = "empty page"
	ReasonBadURL     = "invalid url"
	reasonHTTPStatus = "HTTP status %d"
)

// parkedMarkers textos típicos de dominios estacionados o en venta.
var parkedMarkers = []string{
	"this domain is for sale",
	"buy this domain",
	"domain is parked",
	"parked free",
	"domain may be for sale",
}

// Probe hace GET del sitio y lo inspecciona con goquery.
type Probe struct {
	client    *http.Client
	userAgent string
}

// NewProbe construye la sonda. timeout es el tope de red por request.
func NewProbe(timeout time.Duration) *Probe {
	return &Probe{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
}

// Probe valida el sitio. Los sitios que responden pero no sirven (estado HTTP,
// dominio estacionado, página vacía) vuelven como Valid=false sin error; los
// errores de red se devuelven como error.
func (p *Probe) Probe(ctx context.Context, website string) (*entity.WebsiteValidation, error) {
	target, err := NormalizeURL(website)
	if err != nil {
		return &entity.WebsiteValidation{Valid: false, Reason: ReasonBadURL}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("probe: crear request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe: %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	result := &entity.WebsiteValidation{FinalURL: resp.Request.URL.String()}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Reason = fmt.Sprintf(reasonHTTPStatus, resp.StatusCode)
		return result, nil
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("probe: parsear HTML: %w", err)
	}
	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	description, _ := doc.Find(`meta[name="description"]`).Attr("content")

	bodyText := strings.ToLower(strings.Join(strings.Fields(doc.Find("body").Text()), " "))
	for _, marker := range parkedMarkers {
		if strings.Contains(bodyText, marker) || strings.Contains(strings.ToLower(result.Title), marker) {
			result.Reason = ReasonParked
			return result, nil
		}
	}
	if result.Title == "" && strings.TrimSpace(description) == "" && bodyText == "" {
		result.Reason = ReasonEmptyPage
		return result, nil
	}
	result.Valid = true
	return result, nil
}

// NormalizeURL agrega https:// si falta el esquema y exige host.
func NormalizeURL(website string) (string, error) {
	s := strings.TrimSpace(website)
	if s == "" {
		return "", fmt.Errorf("url vacía")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("url inválida: %q", website)
	}
	return u.String(), nil
}
