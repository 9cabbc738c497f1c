package main

// Wall tracks how many copies of each tile type remain unseen. A fresh wall
// holds four of everything valid for the player count; every tile the player
// sees (hand tiles, draws, called tiles, replacement tiles) is taken out of
// it.
type Wall struct {
	counts map[Tile]int
	pc     PlayerCount
}

// NewWall creates a wall with four copies of every valid tile.
func NewWall(pc PlayerCount) *Wall {
	w := &Wall{counts: make(map[Tile]int, 34), pc: pc}
	for _, t := range AllTiles(pc) {
		w.counts[t] = 4
	}
	return w
}

// Count returns the remaining copies of t (0 for tiles invalid in this
// mode).
func (w *Wall) Count(t Tile) int {
	return w.counts[t]
}

// Take removes one copy of t. In strict mode an empty slot fails; otherwise
// the count clamps at zero and the clamp is reported via the bool result.
func (w *Wall) Take(t Tile, strict bool) (clamped bool, err error) {
	if !t.Valid(w.pc) {
		return false, newErrorf(ErrParse, "'%s' is an invalid tile", t)
	}
	if w.counts[t] <= 0 {
		if strict {
			return false, newErrorf(ErrCapacity, "already no '%s' in the wall, cannot take one more", t)
		}
		return true, nil
	}
	w.counts[t]--
	return false, nil
}

// Put returns one copy of t. In strict mode a full slot fails; otherwise the
// count clamps at four.
func (w *Wall) Put(t Tile, strict bool) (clamped bool, err error) {
	if !t.Valid(w.pc) {
		return false, newErrorf(ErrParse, "'%s' is an invalid tile", t)
	}
	if w.counts[t] >= 4 {
		if strict {
			return false, newErrorf(ErrCapacity, "already 4 '%s' in the wall, cannot add one more", t)
		}
		return true, nil
	}
	w.counts[t]++
	return false, nil
}

// Clone deep-copies the wall.
func (w *Wall) Clone() *Wall {
	counts := make(map[Tile]int, len(w.counts))
	for t, n := range w.counts {
		counts[t] = n
	}
	return &Wall{counts: counts, pc: w.pc}
}

// Consistent reports whether every count is within [0, 4].
func (w *Wall) Consistent() bool {
	for _, n := range w.counts {
		if n < 0 || n > 4 {
			return false
		}
	}
	return true
}

// DiscardedSet records which tile types this player has ever discarded; it
// is the furiten source.
type DiscardedSet map[Tile]struct{}

func (d DiscardedSet) Add(t Tile) {
	d[t] = struct{}{}
}

func (d DiscardedSet) Contains(t Tile) bool {
	_, ok := d[t]
	return ok
}

func (d DiscardedSet) Clone() DiscardedSet {
	clone := make(DiscardedSet, len(d))
	for t := range d {
		clone[t] = struct{}{}
	}
	return clone
}

// Sorted returns the discarded tile types in display order.
func (d DiscardedSet) Sorted() []Tile {
	tiles := make([]Tile, 0, len(d))
	for t := range d {
		tiles = append(tiles, t)
	}
	sortTiles(tiles)
	return tiles
}
