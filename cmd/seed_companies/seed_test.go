package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
)

const benchmarkID = "7f1c2a4e-1111-4a2b-9c3d-000000000001"

func TestDecodeReader_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Empresa,País\nCafé Ñandú,Colombia\n")
	require.NoError(t, err)

	r, err := decodeReader(strings.NewReader(encoded), "windows-1252")
	require.NoError(t, err)
	rows, headers, err := readRows(r, ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"Empresa", "País"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café Ñandú", rows[0]["Empresa"])

	_, err = decodeReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestReadRows_QuitaBOMYFilasCortas(t *testing.T) {
	rows, headers, err := readRows(strings.NewReader("\ufeffNombre;Web\nAcme;https://acme.example\nBeta\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, "Nombre", headers[0])
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1]["Web"])

	_, _, err = readRows(strings.NewReader(""), ',')
	assert.Error(t, err)
}

func TestBuildMapping_DeteccionYOverride(t *testing.T) {
	m, err := buildMapping([]string{"Razón Social", "Sitio_Web", "Notas"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Razón Social", m[dataset.FieldName])
	assert.Equal(t, "Sitio_Web", m[dataset.FieldWebsite])

	m, err = buildMapping([]string{"Razón Social", "Notas"}, []string{"description=Notas"})
	require.NoError(t, err)
	assert.Equal(t, "Notas", m[dataset.FieldDescription])

	_, err = buildMapping([]string{"Notas"}, nil)
	assert.Error(t, err, "sin columna de nombre")

	_, err = buildMapping([]string{"Empresa"}, []string{"rating=Notas"})
	assert.Error(t, err, "campo destino desconocido")

	_, err = buildMapping([]string{"Empresa"}, []string{"sin-igual"})
	assert.Error(t, err)
}

func TestWriteSQL_EscapaYOmiteDuplicados(t *testing.T) {
	ids := 0
	newID = func() string { ids++; return "00000000-0000-0000-0000-00000000000" + string(rune('0'+ids)) }
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { newID = defaultNewID; now = time.Now })

	mapping, err := buildMapping([]string{"Empresa", "Web"}, nil)
	require.NoError(t, err)
	companies, skipped := toCompanies(mapping, []map[string]string{
		{"Empresa": "O'Brien Ltd", "Web": "https://obrien.example"},
		{"Empresa": "o'brien ltd"},
		{"Empresa": "  "},
	})
	require.Len(t, companies, 1)
	assert.Equal(t, 2, skipped)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, benchmarkID, companies))
	out := buf.String()

	assert.Contains(t, out, "2026-01-02T03:04:05Z")
	assert.Contains(t, out, "'O''Brien Ltd'")
	assert.Contains(t, out, `'{"Empresa":"O''Brien Ltd","Web":"https://obrien.example"}'::jsonb`)
	assert.Equal(t, 1, strings.Count(out, "ON CONFLICT DO NOTHING;"))

	assert.Error(t, writeSQL(&buf, "no-es-uuid", companies))
}
