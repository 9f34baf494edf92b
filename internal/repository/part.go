package repository

import (
	"context"
	"fmt"

	"github.com/fleetdepot/depot/internal/domain"
	"github.com/fleetdepot/depot/internal/repository/dao"
)

var (
	ErrPartNumberExists = dao.ErrPartNumberExists
	ErrPartNotFound     = dao.ErrPartNotFound
)

type PartDAO interface {
	Insert(ctx context.Context, part dao.Part) (dao.Part, error)
	FindByID(ctx context.Context, id uint) (dao.Part, error)
	List(ctx context.Context, query string, limit, offset int) ([]dao.Part, error)
	Update(ctx context.Context, part dao.Part) (dao.Part, error)
}

type PartRepository struct {
	dao PartDAO
}

func NewPartRepository(dao PartDAO) *PartRepository {
	return &PartRepository{
		dao: dao,
	}
}

func (r *PartRepository) Create(ctx context.Context, part domain.Part) (domain.Part, error) {
	created, err := r.dao.Insert(ctx, partDomainToDAO(part))
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return partDAOToDomain(created), nil
}

func (r *PartRepository) FindByID(ctx context.Context, id uint) (domain.Part, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return partDAOToDomain(found), nil
}

func (r *PartRepository) List(ctx context.Context, filter domain.PartFilter) ([]domain.Part, error) {
	found, err := r.dao.List(ctx, filter.Query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	parts := make([]domain.Part, 0, len(found))
	for _, p := range found {
		parts = append(parts, partDAOToDomain(p))
	}

	return parts, nil
}

func (r *PartRepository) Update(ctx context.Context, part domain.Part) (domain.Part, error) {
	updated, err := r.dao.Update(ctx, partDomainToDAO(part))
	if err != nil {
		return domain.Part{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return partDAOToDomain(updated), nil
}

func partDomainToDAO(p domain.Part) dao.Part {
	return dao.Part{
		ID:          p.ID,
		PartNumber:  p.PartNumber,
		Description: p.Description,
		UOM:         p.UOM,
		UnitCost:    p.UnitCost,
		SourceRef:   p.SourceRef,
	}
}

func partDAOToDomain(p dao.Part) domain.Part {
	return domain.Part{
		ID:          p.ID,
		PartNumber:  p.PartNumber,
		Description: p.Description,
		UOM:         p.UOM,
		UnitCost:    p.UnitCost,
		SourceRef:   p.SourceRef,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
