package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/benchmark-hub/internal/application/dto"
	"github.com/jhoicas/benchmark-hub/internal/domain"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
	"github.com/jhoicas/benchmark-hub/internal/domain/repository"
)

var maxTargetScore = decimal.NewFromInt(100)

// BenchmarkUseCase casos de uso CRUD para benchmarks.
type BenchmarkUseCase struct {
	repo    repository.BenchmarkRepository
	clients repository.ClientRepository
}

// NewBenchmarkUseCase construye el caso de uso.
func NewBenchmarkUseCase(repo repository.BenchmarkRepository, clients repository.ClientRepository) *BenchmarkUseCase {
	return &BenchmarkUseCase{repo: repo, clients: clients}
}

// Create crea un benchmark en estado draft (si no se indica otro) para un cliente existente.
func (uc *BenchmarkUseCase) Create(ctx context.Context, userID string, in dto.CreateBenchmarkRequest) (*dto.BenchmarkResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !validTargetScore(in.TargetScore) {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.BenchmarkDraft
	}
	now := time.Now()
	b := &entity.Benchmark{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		Name:        name,
		Description: in.Description,
		ModelName:   in.ModelName,
		Status:      status,
		TargetScore: in.TargetScore.Round(2),
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBenchmarkResponse(b), nil
}

// GetByID obtiene un benchmark por ID.
func (uc *BenchmarkUseCase) GetByID(ctx context.Context, id string) (*dto.BenchmarkResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBenchmarkResponse(b), nil
}

// List lista benchmarks filtrando por cliente y estado.
func (uc *BenchmarkUseCase) List(ctx context.Context, in dto.BenchmarkListRequest) (*dto.BenchmarkListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.BenchmarkFilter{
		ClientID: in.ClientID,
		Status:   in.Status,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BenchmarkResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBenchmarkResponse(b))
	}
	return &dto.BenchmarkListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update actualiza solo los campos presentes.
func (uc *BenchmarkUseCase) Update(ctx context.Context, id string, in dto.UpdateBenchmarkRequest) (*dto.BenchmarkResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		b.Name = name
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.ModelName != nil {
		b.ModelName = *in.ModelName
	}
	if in.Status != nil {
		b.Status = *in.Status
	}
	if in.TargetScore != nil {
		if !validTargetScore(*in.TargetScore) {
			return nil, domain.ErrInvalidInput
		}
		b.TargetScore = in.TargetScore.Round(2)
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBenchmarkResponse(b), nil
}

// Delete elimina el benchmark con su dataset.
func (uc *BenchmarkUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validTargetScore(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxTargetScore)
}

func toBenchmarkResponse(b *entity.Benchmark) *dto.BenchmarkResponse {
	return &dto.BenchmarkResponse{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Name:        b.Name,
		Description: b.Description,
		ModelName:   b.ModelName,
		Status:      b.Status,
		TargetScore: b.TargetScore,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
