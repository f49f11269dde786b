package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/benchmark-hub/internal/application/report"
	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/category"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

type fakeSource struct {
	b   *entity.Benchmark
	err error
}

func (s fakeSource) Summaries(_ context.Context, _ string, _ ...category.Dimension) (*entity.Benchmark, []category.Summary, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	tax := category.MustNewTaxonomy(category.DefaultEntries)
	return s.b, category.SummarizeAll(tax, nil), nil
}

type fakeGenerator struct {
	got report.ProgressData
	err error
}

func (g *fakeGenerator) GenerateProgressPDF(_ context.Context, data report.ProgressData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-1.3"), g.err
}

func TestDownloadProgressPDF(t *testing.T) {
	gen := &fakeGenerator{}
	uc := report.NewUseCase(fakeSource{b: &entity.Benchmark{ID: "b1", Name: "Q3 Review"}}, gen, "")

	pdf, name, err := uc.DownloadProgressPDF(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "progreso_q3_review.pdf", name)
	assert.Equal(t, "Benchmark progress", gen.got.Title)
	assert.Len(t, gen.got.Summaries, 4)
	assert.False(t, gen.got.GeneratedAt.IsZero())
}

func TestDownloadProgressPDF_Errores(t *testing.T) {
	uc := report.NewUseCase(fakeSource{err: domain.ErrNotFound}, &fakeGenerator{}, "x")
	_, _, err := uc.DownloadProgressPDF(context.Background(), "b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("font")
	uc = report.NewUseCase(fakeSource{b: &entity.Benchmark{ID: "b1"}}, &fakeGenerator{err: boom}, "x")
	_, _, err = uc.DownloadProgressPDF(context.Background(), "b1")
	assert.ErrorIs(t, err, boom)
}

func TestFilename_SinNombreUsaID(t *testing.T) {
	assert.Equal(t, "progreso_b-9.pdf", report.Filename(&entity.Benchmark{ID: "b-9", Name: " ¿? "}))
}
