package supportsvc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/infrastructure/supportsvc"
)

func TestClient_ValidateWebsite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/websites/validate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://acme.example", body["website"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid":true,"final_url":"https://www.acme.example/","title":"Acme"}`))
	}))
	defer srv.Close()

	c := supportsvc.NewClient(srv.URL+"/", "secret", time.Second)
	res, err := c.ValidateWebsite(context.Background(), "https://acme.example")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "https://www.acme.example/", res.FinalURL)
	assert.Equal(t, "Acme", res.Title)
}

func TestClient_SearchCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/companies/search", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["name"])
		assert.Equal(t, "crm", body["query"])
		_, _ = w.Write([]byte(`{"analysis_method":"DATABASE","passed":false,"summary":"sin datos","sources":["a","b"]}`))
	}))
	defer srv.Close()

	c := supportsvc.NewClient(srv.URL, "", time.Second)
	res, err := c.SearchCompany(context.Background(), &entity.Company{Name: "Acme"}, "crm")
	require.NoError(t, err)
	assert.Equal(t, entity.AnalysisDatabase, res.AnalysisMethod)
	require.NotNil(t, res.Passed)
	assert.False(t, *res.Passed)
	assert.Equal(t, []string{"a", "b"}, res.Sources)
}

func TestClient_SuggestColumnMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Headers    []string   `json:"headers"`
			SampleRows [][]string `json:"sample_rows"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"Empresa"}, body.Headers)
		assert.NotNil(t, body.SampleRows)
		_, _ = w.Write([]byte(`{"mapping":{"name":"Empresa"},"confidence":{"name":0.97}}`))
	}))
	defer srv.Close()

	res, err := supportsvc.NewClient(srv.URL, "", time.Second).SuggestColumnMapping(context.Background(), []string{"Empresa"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Empresa", res.Mapping["name"])
	assert.InDelta(t, 0.97, res.Confidence["name"], 1e-9)
}

func TestClient_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream","message":"search provider down"}`))
	}))
	defer srv.Close()

	_, err := supportsvc.NewClient(srv.URL, "", time.Second).ValidateWebsite(context.Background(), "https://x.example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "search provider down")
}

func TestClient_RespetaContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := supportsvc.NewClient(srv.URL, "", 5*time.Second).ValidateWebsite(ctx, "https://x.example")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
