package valueobjects

import (
	"encoding/json"
	"math"
	"testing"

	"scholargraph/domain/config"
	pkgerrors "scholargraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordWithConfig(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	limit := cfg.MaxCoordinate

	tests := []struct {
		name    string
		x, y    int
		wantErr bool
	}{
		{name: "origin", x: 0, y: 0},
		{name: "upper bound", x: limit, y: limit},
		{name: "lower bound", x: -limit, y: -limit},
		{name: "x above bound", x: limit + 1, y: 0, wantErr: true},
		{name: "y below bound", x: 0, y: -limit - 1, wantErr: true},
		{name: "overflowing square", x: 3037000500, y: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoordWithConfig(tt.x, tt.y, cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.x, c.X())
			assert.Equal(t, tt.y, c.Y())
		})
	}

	t.Run("nil config uses defaults", func(t *testing.T) {
		_, err := NewCoordWithConfig(limit+1, 0, nil)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestCompareDistance(t *testing.T) {
	origin := NewCoord(0, 0)

	tests := []struct {
		name string
		a, b Coord
		want int
	}{
		{name: "closer", a: NewCoord(1, 1), b: NewCoord(2, 0), want: -1},
		{name: "equal", a: NewCoord(3, 4), b: NewCoord(-5, 0), want: 0},
		{name: "equal off axis", a: NewCoord(0, 10), b: NewCoord(6, 8), want: 0},
		{name: "square beyond int64", a: NewCoord(1, 1), b: NewCoord(3037000500, 0), want: -1},
		{name: "far beats farther", a: NewCoord(3037000500, 0), b: NewCoord(math.MinInt64+1, math.MaxInt64), want: -1},
		{name: "extremes reversed", a: NewCoord(math.MaxInt64, 0), b: NewCoord(2, 2), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, origin.CompareDistance(tt.a, tt.b))
			assert.Equal(t, -tt.want, origin.CompareDistance(tt.b, tt.a))
		})
	}
}

func TestSquaredDistanceTo(t *testing.T) {
	assert.Equal(t, "25", NewCoord(1, 2).SquaredDistanceTo(NewCoord(4, 6)).String())
	assert.Equal(t, "9223372037000250000", NewCoord(3037000500, 0).SquaredDistanceTo(NewCoord(0, 0)).String())
	assert.InDelta(t, 5.0, NewCoord(1, 2).DistanceTo(NewCoord(4, 6)), 1e-9)
}

func TestCoordOrderingAndJSON(t *testing.T) {
	assert.True(t, NewCoord(9, 0).Less(NewCoord(0, 1)), "y is compared first")
	assert.True(t, NewCoord(0, 1).Less(NewCoord(1, 1)))
	assert.False(t, NewCoord(1, 1).Less(NewCoord(1, 1)))
	assert.True(t, NewCoord(2, -3).Equals(NewCoord(2, -3)))

	data, err := json.Marshal(NewCoord(2, -3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":2,"y":-3}`, string(data))

	var decoded Coord
	require.NoError(t, json.Unmarshal([]byte(`{"x":7,"y":8}`), &decoded))
	assert.Equal(t, NewCoord(7, 8), decoded)
}
