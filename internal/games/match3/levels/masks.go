package levels

import "github.com/vovakirdan/gemfall/internal/games/match3/engine"

// MaskFor builds the mask of the given shape. Unknown shapes are full.
func MaskFor(shape Shape, size int) engine.Mask {
	switch shape {
	case ShapeDiamond:
		return diamondMask(size)
	case ShapeCutCorners:
		return cutCornersMask(size)
	case ShapePlus:
		return plusMask(size)
	case ShapeHolesLight:
		return holesLightMask(size)
	default:
		return engine.FullMask(size)
	}
}

func emptyMask(size int) engine.Mask {
	m := make(engine.Mask, size)
	for r := range m {
		m[r] = make([]bool, size)
	}
	return m
}

// diamondMask keeps cells within Manhattan distance (size-1)/2 of the center.
func diamondMask(size int) engine.Mask {
	m := emptyMask(size)
	// Doubled coordinates keep the even-size center exact.
	c := size - 1
	for r := 0; r < size; r++ {
		for col := 0; col < size; col++ {
			if abs(2*col-c)+abs(2*r-c) <= c {
				m[r][col] = true
			}
		}
	}
	return m
}

func cutCornersMask(size int) engine.Mask {
	m := engine.FullMask(size)
	k := 2
	if size >= 9 {
		k = 3
	}
	for r := 0; r < k; r++ {
		for c := 0; c < k; c++ {
			m[r][c] = false
			m[r][size-1-c] = false
			m[size-1-r][c] = false
			m[size-1-r][size-1-c] = false
		}
	}
	return m
}

func plusMask(size int) engine.Mask {
	m := emptyMask(size)
	mid := size / 2
	thick := 0
	if size >= 7 {
		thick = 1
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if abs(r-mid) <= thick || abs(c-mid) <= thick {
				m[r][c] = true
			}
		}
	}
	return m
}

// holesLight punches a handful of fixed holes, listed as (col, row).
var holesLight = map[int][]engine.Coord{
	9: {{Col: 2, Row: 2}, {Col: 6, Row: 2}, {Col: 4, Row: 4}, {Col: 2, Row: 6}, {Col: 6, Row: 6}},
	8: {{Col: 2, Row: 2}, {Col: 5, Row: 2}, {Col: 3, Row: 4}, {Col: 2, Row: 5}, {Col: 5, Row: 5}},
	7: {{Col: 2, Row: 2}, {Col: 4, Row: 2}, {Col: 3, Row: 4}, {Col: 2, Row: 4}},
}

func holesLightMask(size int) engine.Mask {
	m := engine.FullMask(size)
	holes, ok := holesLight[size]
	if !ok {
		holes = holesLight[7]
	}
	for _, h := range holes {
		if h.Row < size && h.Col < size {
			m[h.Row][h.Col] = false
		}
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
