package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "min", value: 1},
		{name: "max", value: 100},
		{name: "zero", value: 0, wantErr: true},
		{name: "negative", value: -5, wantErr: true},
		{name: "over max", value: 101, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuantity(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, q.Value())
		})
	}
}

func TestQuantityAdd(t *testing.T) {
	a, _ := NewQuantity(60)
	b, _ := NewQuantity(40)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 100, sum.Value())

	c, _ := NewQuantity(1)
	_, err = sum.Add(c)
	assert.ErrorIs(t, err, ErrValidation)
}
