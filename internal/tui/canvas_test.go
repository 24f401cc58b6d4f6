package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/hover"
	"github.com/jmylchreest/bezel/internal/shape"
)

func testParams() shape.Params {
	return shape.Params{Family: shape.FamilyBezel, TopInset: 32, CurveHeight: 12, BottomRadius: 12, EarRadius: 10}
}

func TestCanvas_Filled(t *testing.T) {
	c := NewCanvas()
	c.SetShape(testParams())
	c.SetFrame(geometry.Rect{X: 810, Y: 1044, Width: 300, Height: 36})
	c.SetMorph(0)

	centre := geometry.Point{X: 960, Y: 1062}
	assert.False(t, c.Filled(centre), "hidden canvas draws nothing")

	c.Show()
	assert.True(t, c.Filled(centre))
	assert.False(t, c.Filled(geometry.Point{X: 811, Y: 1079.5}), "inset top corner")
	assert.False(t, c.Filled(geometry.Point{X: 960, Y: 1000}), "below the frame")

	c.SetMorph(1)
	assert.True(t, c.Filled(geometry.Point{X: 811, Y: 1079.5}), "square top corner when fully morphed")

	c.Hide()
	assert.False(t, c.Filled(centre))
}

func TestCanvas_PathRebuiltOnChange(t *testing.T) {
	c := NewCanvas()
	c.SetShape(testParams())
	c.SetFrame(geometry.Rect{Width: 300, Height: 36})
	first := c.Path()
	assert.Same(t, first, c.Path(), "cached")

	c.SetFrame(geometry.Rect{X: 5, Width: 300, Height: 36})
	assert.Same(t, first, c.Path(), "moving keeps the local path")

	c.SetFrame(geometry.Rect{Width: 320, Height: 36})
	assert.NotSame(t, first, c.Path())
}

func TestViewport_Mapping(t *testing.T) {
	focus := geometry.Rect{X: 750, Y: 870, Width: 420, Height: 210}
	vp := NewViewport(focus, 40, 100, 30)

	assert.InDelta(t, 5.0, vp.Scale, 1e-9, "500 units over 100 columns")
	assert.InDelta(t, 710.0, vp.Left, 1e-9)
	assert.Equal(t, focus.MaxY(), vp.Top)

	for _, cell := range [][2]int{{0, 0}, {50, 10}, {99, 29}} {
		col, row, ok := vp.Cell(vp.CellCenter(cell[0], cell[1]))
		require.True(t, ok)
		assert.Equal(t, cell, [2]int{col, row})

		col, row, ok = vp.Cell(vp.PointerAt(cell[0], cell[1]))
		require.True(t, ok)
		assert.Equal(t, cell, [2]int{col, row})
	}

	_, _, ok := vp.Cell(geometry.Point{X: 0, Y: 0})
	assert.False(t, ok)
	_, _, ok = vp.Cell(geometry.Point{X: 960, Y: 1081})
	assert.False(t, ok, "above the top edge")
}

func TestViewport_FitsHeight(t *testing.T) {
	vp := NewViewport(geometry.Rect{Width: 100, Height: 400}, 0, 100, 10)
	assert.InDelta(t, 20.0, vp.Scale, 1e-9, "400 units over 10 rows of aspect 2")
}

func TestViewport_PointerAtTopRowIsNearTop(t *testing.T) {
	reference := geometry.Rect{X: 810, Y: 1044, Width: 300, Height: 36}
	vp := NewViewport(hover.SurfaceBounds(reference, hover.DefaultConfig()), 40, 80, 20)
	col, _, ok := vp.Cell(geometry.Point{X: 960, Y: 1079})
	require.True(t, ok)

	z := hover.Classify(vp.PointerAt(col, 0), reference, hover.DefaultConfig())
	assert.True(t, z.ExpandEligible())
	z = hover.Classify(vp.PointerAt(col, 1), reference, hover.DefaultConfig())
	assert.False(t, z.ExpandEligible())
}

func TestRasterize(t *testing.T) {
	frame := geometry.Rect{X: 810, Y: 1044, Width: 300, Height: 36}
	c := NewCanvas()
	c.SetShape(testParams())
	c.SetFrame(frame)
	c.SetMorph(1)

	cfg := hover.DefaultConfig()
	vp := NewViewport(hover.SurfaceBounds(frame, cfg), 40, 60, 10)

	zones := rasterize(c, vp, frame, cfg, true, nil)
	require.Len(t, zones, 10)
	require.Len(t, zones[0], 60)
	count := countCells(zones)
	assert.Zero(t, count[cellFill], "canvas not shown yet")
	assert.Positive(t, count[cellOuter])
	assert.Positive(t, count[cellMiddle])
	assert.Positive(t, count[cellActive])

	col, _, ok := vp.Cell(geometry.Point{X: 960, Y: 1079})
	require.True(t, ok)
	assert.Equal(t, cellActive, zones[0][col])

	c.Show()
	pointer := geometry.Point{X: 760, Y: 1070}
	plain := rasterize(c, vp, frame, cfg, false, &pointer)
	count = countCells(plain)
	assert.Positive(t, count[cellFill])
	assert.Equal(t, 1, count[cellPointer])
	assert.Zero(t, count[cellOuter]+count[cellMiddle]+count[cellActive])

	col, row, ok := vp.Cell(geometry.Point{X: 960, Y: 1062})
	require.True(t, ok)
	assert.Equal(t, cellFill, plain[row][col])
}

func countCells(grid [][]cellKind) map[cellKind]int {
	count := map[cellKind]int{}
	for _, row := range grid {
		for _, k := range row {
			count[k]++
		}
	}
	return count
}
