package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/infrastructure/web"
)

func serve(t *testing.T, status int, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/", http.StatusMovedPermanently)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProbe_SitioValido(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><head><title> Acme Corp </title></head><body><h1>CRM para pymes</h1></body></html>`)

	res, err := web.NewProbe(time.Second).Probe(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "Acme Corp", res.Title)
	assert.Equal(t, srv.URL+"/", res.FinalURL, "se sigue la redirección")
}

func TestProbe_DominioEstacionado(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><head><title>acme.example</title></head><body>This domain is for sale! Contact us.</body></html>`)

	res, err := web.NewProbe(time.Second).Probe(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, web.ReasonParked, res.Reason)
}

func TestProbe_EstadoHTTP(t *testing.T) {
	srv := serve(t, http.StatusNotFound, `not found`)

	res, err := web.NewProbe(time.Second).Probe(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "HTTP status 404", res.Reason)
}

func TestProbe_PaginaVacia(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><head></head><body>   </body></html>`)

	res, err := web.NewProbe(time.Second).Probe(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, web.ReasonEmptyPage, res.Reason)
}

func TestProbe_ErrorDeRed(t *testing.T) {
	srv := serve(t, http.StatusOK, "")
	url := srv.URL
	srv.Close()

	_, err := web.NewProbe(time.Second).Probe(context.Background(), url)
	assert.Error(t, err)
}

func TestNormalizeURL(t *testing.T) {
	got, err := web.NormalizeURL(" acme.example/about ")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.example/about", got)

	_, err = web.NormalizeURL("ftp://acme.example")
	assert.Error(t, err)
	_, err = web.NormalizeURL("")
	assert.Error(t, err)

	res, err := web.NewProbe(time.Second).Probe(context.Background(), "mailto:x")
	require.NoError(t, err)
	assert.Equal(t, web.ReasonBadURL, res.Reason)
}
