package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// Encabezados reconocidos por campo destino (en minúsculas, sin acentos).
var headerAliases = map[string][]string{
	dataset.FieldName:        {"name", "nombre", "empresa", "company", "razon social"},
	dataset.FieldWebsite:     {"website", "web", "sitio", "sitio web", "url"},
	dataset.FieldDescription: {"description", "descripcion", "detalle"},
	dataset.FieldCountry:     {"country", "pais"},
}

func defaultNewID() string { return uuid.New().String() }

var newID = defaultNewID

var now = time.Now

// decodeReader envuelve r para que entregue UTF-8.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %q", encoding)
}

// readRows lee el CSV: la primera fila es el encabezado.
func readRows(r io.Reader, comma rune) ([]map[string]string, []string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("CSV vacío")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]map[string]string, 0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leer fila %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

// buildMapping detecta el mapeo por nombre de encabezado; flags campo=encabezado lo sobrescriben.
func buildMapping(headers []string, flags []string) (dto.ColumnMapping, error) {
	m := make(dto.ColumnMapping)
	for _, h := range headers {
		norm := foldHeader(h)
		for field, aliases := range headerAliases {
			if _, taken := m[field]; taken {
				continue
			}
			for _, a := range aliases {
				if norm == a {
					m[field] = h
				}
			}
		}
	}
	for _, f := range flags {
		field, header, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("--map %q: se espera campo=encabezado", f)
		}
		m[strings.ToLower(strings.TrimSpace(field))] = strings.TrimSpace(header)
	}
	if err := dataset.ValidateMapping(m); err != nil {
		return nil, err
	}
	return m, nil
}

func foldHeader(h string) string {
	r := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "_", " ")
	return strings.Join(strings.Fields(r.Replace(strings.ToLower(h))), " ")
}

// toCompanies aplica las mismas reglas de omisión que el import de la API.
func toCompanies(m dto.ColumnMapping, rows []map[string]string) ([]*entity.Company, int) {
	out := make([]*entity.Company, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	skipped := 0
	for _, row := range rows {
		c := dataset.CompanyFromRow(m, row)
		key := strings.ToLower(c.Name)
		if c.Name == "" || seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out, skipped
}

// writeSQL escribe un INSERT por empresa; ON CONFLICT DO NOTHING hace el script re-ejecutable.
func writeSQL(w io.Writer, benchmarkID string, companies []*entity.Company) error {
	if _, err := uuid.Parse(benchmarkID); err != nil {
		return fmt.Errorf("benchmark-id inválido: %w", err)
	}
	stamp := now().UTC().Format(time.RFC3339)
	if _, err := fmt.Fprintf(w, "-- Dataset del benchmark %s\n-- Generado por seed_companies el %s\n\n", benchmarkID, stamp); err != nil {
		return err
	}
	for _, c := range companies {
		raw, err := json.Marshal(c.RawData) // claves ordenadas: salida estable
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w,
			"INSERT INTO companies (id, benchmark_id, name, website, description, country, raw_data)\n"+
				"VALUES ('%s', '%s', %s, %s, %s, %s, %s::jsonb)\nON CONFLICT DO NOTHING;\n",
			newID(), benchmarkID, quote(c.Name), quote(c.Website), quote(c.Description), quote(c.Country), quote(string(raw)))
		if err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
