package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebistro/tablebistro/internal/shared"
)

func TestNewTableID(t *testing.T) {
	id, err := NewTableID(5)
	require.NoError(t, err)
	assert.Equal(t, 5, id.Value())

	_, err = NewTableID(0)
	assert.ErrorIs(t, err, shared.ErrValidation)
	_, err = NewTableID(-3)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestStartSessionIsIdempotent(t *testing.T) {
	table := NewTable(TableID(5))
	assert.False(t, table.IsOccupied())

	first := table.StartSession()
	require.NotNil(t, first)
	assert.True(t, table.IsOccupied())
	assert.True(t, first.IsActive())

	second := table.StartSession()
	assert.Equal(t, first.ID(), second.ID())
	assert.True(t, table.IsOccupied())
}

func TestEndSession(t *testing.T) {
	table := NewTable(TableID(7))

	err := table.EndSession()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	session := table.StartSession()
	require.NoError(t, table.EndSession())
	assert.False(t, table.IsOccupied())
	assert.Nil(t, table.ActiveSession())
	assert.False(t, session.IsActive())
	assert.NotNil(t, session.EndedAt())

	// A new start opens a fresh session, not the ended one.
	next := table.StartSession()
	assert.NotEqual(t, session.ID(), next.ID())
}
