package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/tablebistro/tablebistro/internal/shared"
)

// TableID is the visible table number, not a surrogate key.
type TableID int

func NewTableID(value int) (TableID, error) {
	if value <= 0 {
		return 0, shared.Validationf("table number must be positive, got %d", value)
	}
	return TableID(value), nil
}

func (id TableID) Value() int { return int(id) }

type SessionID uuid.UUID

func NewSessionID() SessionID { return SessionID(uuid.New()) }

func ParseSessionID(s string) (SessionID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, shared.Validationf("invalid session id %q", s)
	}
	return SessionID(u), nil
}

func (id SessionID) String() string { return uuid.UUID(id).String() }

func (id SessionID) IsZero() bool { return id == SessionID(uuid.Nil) }

// TableSession is one seating period at a table. Once ended it is
// immutable history.
type TableSession struct {
	id        SessionID
	startedAt time.Time
	endedAt   *time.Time
}

func NewTableSession() *TableSession {
	return &TableSession{id: NewSessionID(), startedAt: time.Now().UTC()}
}

// RestoreTableSession rebuilds a session from persisted state.
func RestoreTableSession(id SessionID, startedAt time.Time, endedAt *time.Time) *TableSession {
	return &TableSession{id: id, startedAt: startedAt, endedAt: endedAt}
}

func (s *TableSession) ID() SessionID { return s.id }

func (s *TableSession) StartedAt() time.Time { return s.startedAt }

func (s *TableSession) EndedAt() *time.Time { return s.endedAt }

func (s *TableSession) IsActive() bool { return s.endedAt == nil }

func (s *TableSession) End() {
	now := time.Now().UTC()
	s.endedAt = &now
}

// Table holds at most one active session at a time.
type Table struct {
	id            TableID
	activeSession *TableSession
}

func NewTable(id TableID) *Table {
	return &Table{id: id}
}

// RestoreTable rebuilds a table from persisted state.
func RestoreTable(id TableID, activeSession *TableSession) *Table {
	return &Table{id: id, activeSession: activeSession}
}

func (t *Table) ID() TableID { return t.id }

func (t *Table) ActiveSession() *TableSession { return t.activeSession }

func (t *Table) IsOccupied() bool {
	return t.activeSession != nil && t.activeSession.IsActive()
}

// StartSession is idempotent: if the table is already occupied the existing
// session is kept, so several diners at one table share a session.
func (t *Table) StartSession() *TableSession {
	if !t.IsOccupied() {
		t.activeSession = NewTableSession()
	}
	return t.activeSession
}

func (t *Table) EndSession() error {
	if !t.IsOccupied() {
		return shared.InvalidStatef("table %d does not have an active session to end", t.id.Value())
	}
	t.activeSession.End()
	t.activeSession = nil
	return nil
}
