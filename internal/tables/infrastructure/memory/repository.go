package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tablebistro/tablebistro/internal/shared"
	"github.com/tablebistro/tablebistro/internal/tables/domain"
)

type sessionRecord struct {
	id        domain.SessionID
	startedAt time.Time
	endedAt   *time.Time
}

// TableRepository keeps tables in a mutex-guarded map. Loads rebuild fresh
// domain objects so each caller mutates its own copy (last writer wins).
type TableRepository struct {
	mu     sync.RWMutex
	tables map[domain.TableID]*sessionRecord // nil record value means no active session
	known  map[domain.TableID]struct{}
}

func NewTableRepository() *TableRepository {
	return &TableRepository{
		tables: make(map[domain.TableID]*sessionRecord),
		known:  make(map[domain.TableID]struct{}),
	}
}

// Seed registers empty tables for the given numbers.
func (r *TableRepository) Seed(numbers ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range numbers {
		id := domain.TableID(n)
		if _, ok := r.known[id]; !ok {
			r.known[id] = struct{}{}
			r.tables[id] = nil
		}
	}
}

func (r *TableRepository) GetByID(_ context.Context, id domain.TableID) (*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.known[id]; !ok {
		return nil, shared.NotFoundf("table %d not found", id.Value())
	}
	return restore(id, r.tables[id]), nil
}

func (r *TableRepository) GetAll(_ context.Context) ([]*domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Table, 0, len(r.known))
	for id := range r.known {
		out = append(out, restore(id, r.tables[id]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *TableRepository) Save(_ context.Context, table *domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[table.ID()] = struct{}{}
	if !table.IsOccupied() {
		r.tables[table.ID()] = nil
		return nil
	}
	s := table.ActiveSession()
	r.tables[table.ID()] = &sessionRecord{id: s.ID(), startedAt: s.StartedAt(), endedAt: s.EndedAt()}
	return nil
}

func restore(id domain.TableID, rec *sessionRecord) *domain.Table {
	if rec == nil {
		return domain.RestoreTable(id, nil)
	}
	return domain.RestoreTable(id, domain.RestoreTableSession(rec.id, rec.startedAt, rec.endedAt))
}
