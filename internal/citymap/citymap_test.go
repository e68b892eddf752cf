package citymap

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name    string
		data    CityMapData
		wantErr string
	}{
		{"inverted bounds", CityMapData{Bounds: Bounds{MinX: 10, MaxX: 0, MaxY: 10}, Targets: []Position{{0, 0}}}, "inverted"},
		{"no targets", CityMapData{Bounds: square}, "no targets"},
		{"duplicate target", CityMapData{Bounds: square, Targets: []Position{{1, 2}, {1, 2}}}, "already exists"},
		{"target outside", CityMapData{Bounds: square, Targets: []Position{{101, 2}}}, "outside the city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTargetsKeepInsertionOrder(t *testing.T) {
	in := []Position{{50, 50}, {1, 1}, {20, 0}}
	m, err := New(CityMapData{Bounds: square, Targets: in})
	require.NoError(t, err)

	got := m.Targets()
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("Targets() mismatch (-want +got):\n%s", diff)
	}

	got[0] = Position{99, 99}
	assert.Equal(t, Position{50, 50}, m.Targets()[0], "Targets must return a copy")
	assert.True(t, m.IsTarget(Position{1, 1}))
	assert.False(t, m.IsTarget(Position{2, 2}))
}

func TestIsWithinCity(t *testing.T) {
	m, err := New(CityMapData{Bounds: square, Targets: []Position{{5, 5}}})
	require.NoError(t, err)

	assert.True(t, m.IsWithinCity(Position{0, 0}))
	assert.True(t, m.IsWithinCity(Position{100, 100}))
	assert.False(t, m.IsWithinCity(Position{-1, 50}))
	assert.False(t, m.IsWithinCity(Position{50, 101}))
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name    string
		a, b, p Position
		want    float64
	}{
		{"on the segment", Position{0, 0}, Position{0, 16}, Position{0, 5}, 0},
		{"beside the segment", Position{0, 0}, Position{10, 0}, Position{5, 3}, 3},
		{"past the end", Position{0, 0}, Position{10, 0}, Position{13, 4}, 5},
		{"before the start", Position{0, 0}, Position{10, 0}, Position{-3, 0}, 3},
		{"degenerate segment", Position{1, 1}, Position{1, 1}, Position{0, 0}, math.Sqrt2},
		{"diagonal", Position{0, 0}, Position{10, 10}, Position{10, 0}, 5 * math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SegmentDistance(tt.a, tt.b, tt.p), 1e-9)
		})
	}
}

func TestPositionHelpers(t *testing.T) {
	assert.Equal(t, Position{3, -1}, Position{1, 1}.Translate(2, -2))
	assert.InDelta(t, 5.0, Position{3, 4}.DistanceFromOrigin(), 1e-12)
	assert.Equal(t, "(3,4)", Position{3, 4}.String())
}
