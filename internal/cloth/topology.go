package cloth

// Pair is an unordered link between two particle indices.
type Pair struct{ A, B int }

// grid index of (row, col) for a w x h grid; row runs along x, col along z.
func gridIndex(h, row, col int) int { return row*h + col }

// NeighborPairs links axis-adjacent particles.
//
//	x-x-x
//	| | |
//	x-x-x
func NeighborPairs(w, h int) []Pair {
	out := make([]Pair, 0, NeighborCount(w, h))
	for row := 0; row < w-1; row++ {
		for col := 0; col < h; col++ {
			out = append(out, Pair{gridIndex(h, row, col), gridIndex(h, row+1, col)})
		}
	}
	for row := 0; row < w; row++ {
		for col := 0; col < h-1; col++ {
			out = append(out, Pair{gridIndex(h, row, col), gridIndex(h, row, col+1)})
		}
	}
	return out
}

// ShearPairs links both diagonals of every cell.
//
//	x   x
//	 \ /
//	  X
//	 / \
//	x   x
func ShearPairs(w, h int) []Pair {
	out := make([]Pair, 0, ShearCount(w, h))
	for row := 0; row < w-1; row++ {
		for col := 0; col < h-1; col++ {
			out = append(out, Pair{gridIndex(h, row, col), gridIndex(h, row+1, col+1)})
		}
	}
	for row := 0; row < w-1; row++ {
		for col := 1; col < h; col++ {
			out = append(out, Pair{gridIndex(h, row, col), gridIndex(h, row+1, col-1)})
		}
	}
	return out
}

// BendingPairs links particles two cells apart along each axis.
//
//	x-(x)-x
func BendingPairs(w, h int) []Pair {
	out := make([]Pair, 0, BendingCount(w, h))
	for row := 0; row < w; row++ {
		for col := 0; col < h-2; col++ {
			out = append(out, Pair{gridIndex(h, row, col), gridIndex(h, row, col+2)})
		}
	}
	for row := 0; row < w-2; row++ {
		for col := 0; col < h; col++ {
			out = append(out, Pair{gridIndex(h, row, col), gridIndex(h, row+2, col)})
		}
	}
	return out
}

// Pairs returns the links of one family.
func Pairs(f Family, w, h int) []Pair {
	switch f {
	case Neighbor:
		return NeighborPairs(w, h)
	case Shear:
		return ShearPairs(w, h)
	case Bending:
		return BendingPairs(w, h)
	}
	return nil
}

// NeighborCount is the number of axis-adjacent pairs in a w x h grid.
func NeighborCount(w, h int) int {
	return pos(w-1)*pos(h) + pos(w)*pos(h-1)
}

// ShearCount is the number of diagonal pairs, two per grid cell.
func ShearCount(w, h int) int {
	return 2 * pos(w-1) * pos(h-1)
}

// BendingCount is the number of pairs two cells apart along an axis.
func BendingCount(w, h int) int {
	return pos(w)*pos(h-2) + pos(w-2)*pos(h)
}

// Count is the closed-form number of springs of family f.
func Count(f Family, w, h int) int {
	switch f {
	case Neighbor:
		return NeighborCount(w, h)
	case Shear:
		return ShearCount(w, h)
	case Bending:
		return BendingCount(w, h)
	}
	return 0
}

func pos(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
