package application

import (
	"context"
	"errors"

	"github.com/tablebistro/tablebistro/internal/shared"
	"github.com/tablebistro/tablebistro/internal/tables/domain"
)

// Service orchestrates table seating. The table roster is pre-seeded;
// sessions are started and ended on existing tables only.
type Service struct {
	repo TableRepository
}

func NewService(repo TableRepository) *Service {
	return &Service{repo: repo}
}

// StartSession starts (or joins) the active session for a table. Starting is
// idempotent: repeated calls while the table is occupied return the same
// session.
func (s *Service) StartSession(ctx context.Context, tableNumber int) (TableSessionDTO, error) {
	table, err := s.loadTable(ctx, tableNumber)
	if err != nil {
		return TableSessionDTO{}, err
	}

	occupied := table.IsOccupied()
	session := table.StartSession()
	if !occupied {
		if err := s.repo.Save(ctx, table); err != nil {
			return TableSessionDTO{}, err
		}
	}

	return TableSessionDTO{
		SessionID:   session.ID().String(),
		TableNumber: table.ID().Value(),
		StartedAt:   session.StartedAt(),
	}, nil
}

// EndSession closes the active session, freeing the table.
func (s *Service) EndSession(ctx context.Context, tableNumber int) (TableDTO, error) {
	table, err := s.loadTable(ctx, tableNumber)
	if err != nil {
		return TableDTO{}, err
	}
	if err := table.EndSession(); err != nil {
		return TableDTO{}, err
	}
	if err := s.repo.Save(ctx, table); err != nil {
		return TableDTO{}, err
	}
	return toTableDTO(table), nil
}

// Tables lists the seeded roster with occupancy.
func (s *Service) Tables(ctx context.Context) ([]TableDTO, error) {
	tables, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TableDTO, 0, len(tables))
	for _, t := range tables {
		out = append(out, toTableDTO(t))
	}
	return out, nil
}

func (s *Service) loadTable(ctx context.Context, tableNumber int) (*domain.Table, error) {
	id, err := domain.NewTableID(tableNumber)
	if err != nil {
		return nil, err
	}
	table, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("table %d does not exist", tableNumber)
		}
		return nil, err
	}
	return table, nil
}
