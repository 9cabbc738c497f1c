package main

import (
	"fmt"
	"sort"
	"strings"
)

// PatternKind names the three winning patterns a hand can be measured
// against.
type PatternKind uint8

const (
	PatternStandard   PatternKind = iota // four groups and a pair
	PatternSevenPairs                    // seven distinct pairs
	PatternOrphans                       // thirteen orphans
)

func (p PatternKind) String() string {
	switch p {
	case PatternStandard:
		return "standard"
	case PatternSevenPairs:
		return "seven-pairs"
	default:
		return "thirteen-orphans"
	}
}

// Partial is two suited tiles one draw away from a run: adjacent
// (open-ended) or separated by one rank (gapped). A < B always.
type Partial struct {
	A, B Tile
}

// Gapped reports whether the partial waits on its middle tile.
func (p Partial) Gapped() bool {
	return p.B.Rank == p.A.Rank+2
}

// Decomposition is one way to account for every free tile of a hand under
// one winning pattern. Floats are split by whether the decomposition still
// has block slots they could grow into (valid) or they are structurally
// dead (invalid); dead floats are the discard candidates.
type Decomposition struct {
	Pattern       PatternKind
	Melds         []Meld // concealed melds found in the free tiles
	Pairs         []Tile
	Partials      []Partial
	ValidFloats   []Tile
	InvalidFloats []Tile

	// Thirteen-orphans bookkeeping: the distinct yaochuu types held, and
	// the type chosen as the pair when one exists.
	Marks    []Tile
	HasPair  bool
	PairTile Tile
}

func (d Decomposition) floats() []Tile {
	return append(append([]Tile(nil), d.InvalidFloats...), d.ValidFloats...)
}

// discardables lists the floats this decomposition proposes as discards:
// its dead floats, except that a seven-pairs decomposition with no dead
// copies offers its singles instead.
func (d Decomposition) discardables() []Tile {
	if d.Pattern == PatternSevenPairs && len(d.InvalidFloats) == 0 {
		return d.ValidFloats
	}
	return d.InvalidFloats
}

// key builds a canonical form for structural deduplication.
func (d Decomposition) key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", d.Pattern)
	for _, m := range d.Melds {
		fmt.Fprintf(&b, "M%d%s", m.Kind, m.Tile)
	}
	b.WriteByte('|')
	for _, p := range d.Pairs {
		b.WriteString(p.String())
	}
	b.WriteByte('|')
	for _, p := range d.Partials {
		b.WriteString(p.A.String())
		b.WriteString(p.B.String())
	}
	b.WriteByte('|')
	floats := d.floats()
	sortTiles(floats)
	for _, f := range floats {
		b.WriteString(f.String())
	}
	if d.HasPair {
		fmt.Fprintf(&b, "|P%s", d.PairTile)
	}
	return b.String()
}

// Decompose enumerates every decomposition of the hand's free tiles across
// the three winning patterns and returns the minimum shanten together with
// all decompositions achieving it. The free portion must hold 3k+2 tiles.
func Decompose(hand Hand, pc PlayerCount) (int, []Decomposition, error) {
	if len(hand.Free)%3 != 2 {
		return 0, nil, newErrorf(ErrLogic, "decomposer needs 3k+2 free tiles, got %d", len(hand.Free))
	}
	groups := hand.EffectiveSize() / 3

	best := 1 << 8
	var bestDecomps []Decomposition
	consider := func(shanten int, d Decomposition) {
		if shanten > best {
			return
		}
		if shanten < best {
			best = shanten
			bestDecomps = bestDecomps[:0]
		}
		bestDecomps = append(bestDecomps, d)
	}

	var counts [34]int
	for _, t := range hand.Free {
		counts[t.ID()]++
	}

	enumerateStandard(&counts, 0, &decompWork{}, func(w *decompWork) {
		melds := len(w.melds) + len(hand.Fixed)
		shanten := standardShanten(groups, melds, len(w.pairs), len(w.partials))
		if shanten > best {
			return
		}
		d := w.snapshot()
		slack := groups + 1 - (melds + len(d.Partials) + len(d.Pairs))
		if slack <= 0 {
			d.InvalidFloats = d.ValidFloats
			d.ValidFloats = nil
		}
		consider(shanten, d)
	})

	if len(hand.Free) == 14 && len(hand.Fixed) == 0 {
		sh, d := sevenPairsDecompose(&counts)
		consider(sh, d)
		for _, sd := range orphansDecompose(&counts) {
			consider(sd.shanten, sd.decomp)
		}
	}

	// Deduplicate structurally; identical partitions can be reached through
	// different consumption orders.
	seen := make(map[string]struct{}, len(bestDecomps))
	deduped := bestDecomps[:0]
	for _, d := range bestDecomps {
		k := d.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, d)
	}
	return best, deduped, nil
}

// standardShanten evaluates one standard-pattern decomposition. groups is
// the slot count G (effective size / 3), melds includes the fixed melds.
// At most G-melds partials count, surplus pairs may stand in for partials,
// and one pair beyond that counts as the head.
func standardShanten(groups, melds, pairs, partials int) int {
	need := groups - melds
	usedPartials := partials
	if usedPartials > need {
		usedPartials = need
	}
	spareSlots := need - usedPartials
	usedPairBlocks := pairs - 1
	if usedPairBlocks < 0 {
		usedPairBlocks = 0
	}
	if usedPairBlocks > spareSlots {
		usedPairBlocks = spareSlots
	}
	shanten := 2*need - usedPartials - usedPairBlocks
	if pairs >= 1 {
		shanten--
	}
	return shanten
}

// decompWork is the mutable state threaded through the standard-pattern
// recursion.
type decompWork struct {
	melds    []Meld
	pairs    []Tile
	partials []Partial
	floats   []Tile
}

func (w *decompWork) snapshot() Decomposition {
	d := Decomposition{
		Pattern:     PatternStandard,
		Melds:       append([]Meld(nil), w.melds...),
		Pairs:       append([]Tile(nil), w.pairs...),
		Partials:    append([]Partial(nil), w.partials...),
		ValidFloats: append([]Tile(nil), w.floats...),
	}
	sort.Slice(d.Melds, func(i, j int) bool {
		if d.Melds[i].Kind != d.Melds[j].Kind {
			return d.Melds[i].Kind < d.Melds[j].Kind
		}
		return d.Melds[i].Tile.Less(d.Melds[j].Tile)
	})
	sortTiles(d.Pairs)
	sort.Slice(d.Partials, func(i, j int) bool {
		if d.Partials[i].A != d.Partials[j].A {
			return d.Partials[i].A.Less(d.Partials[j].A)
		}
		return d.Partials[i].B.Less(d.Partials[j].B)
	})
	sortTiles(d.ValidFloats)
	return d
}

// enumerateStandard walks every way the counts can be split into triplets,
// pairs, runs, partials, and floats. Tiles are consumed lowest-first; each
// recursion strictly shrinks the multiset, and leaves fire the callback.
func enumerateStandard(counts *[34]int, start int, work *decompWork, leaf func(*decompWork)) {
	id := start
	for id < 34 && counts[id] == 0 {
		id++
	}
	if id == 34 {
		leaf(work)
		return
	}
	t := tileFromID(id)
	suited := t.Suit != Honor
	inSuit := func(offset int) bool {
		return suited && int(t.Rank)+offset <= 9
	}

	// Triplet.
	if counts[id] >= 3 {
		counts[id] -= 3
		work.melds = append(work.melds, Meld{Kind: MeldTriplet, Tile: t})
		enumerateStandard(counts, id, work, leaf)
		work.melds = work.melds[:len(work.melds)-1]
		counts[id] += 3
	}
	// Pair.
	if counts[id] >= 2 {
		counts[id] -= 2
		work.pairs = append(work.pairs, t)
		enumerateStandard(counts, id, work, leaf)
		work.pairs = work.pairs[:len(work.pairs)-1]
		counts[id] += 2
	}
	// Run t, t+1, t+2.
	if inSuit(2) && counts[id+1] > 0 && counts[id+2] > 0 {
		counts[id], counts[id+1], counts[id+2] = counts[id]-1, counts[id+1]-1, counts[id+2]-1
		work.melds = append(work.melds, Meld{Kind: MeldRun, Tile: t})
		enumerateStandard(counts, id, work, leaf)
		work.melds = work.melds[:len(work.melds)-1]
		counts[id], counts[id+1], counts[id+2] = counts[id]+1, counts[id+1]+1, counts[id+2]+1
	}
	// Adjacent partial t, t+1.
	if inSuit(1) && counts[id+1] > 0 {
		counts[id], counts[id+1] = counts[id]-1, counts[id+1]-1
		work.partials = append(work.partials, Partial{A: t, B: tileFromID(id + 1)})
		enumerateStandard(counts, id, work, leaf)
		work.partials = work.partials[:len(work.partials)-1]
		counts[id], counts[id+1] = counts[id]+1, counts[id+1]+1
	}
	// Gapped partial t, t+2.
	if inSuit(2) && counts[id+2] > 0 {
		counts[id], counts[id+2] = counts[id]-1, counts[id+2]-1
		work.partials = append(work.partials, Partial{A: t, B: tileFromID(id + 2)})
		enumerateStandard(counts, id, work, leaf)
		work.partials = work.partials[:len(work.partials)-1]
		counts[id], counts[id+2] = counts[id]+1, counts[id+2]+1
	}
	// Float.
	counts[id]--
	work.floats = append(work.floats, t)
	enumerateStandard(counts, id, work, leaf)
	work.floats = work.floats[:len(work.floats)-1]
	counts[id]++
}

// sevenPairsDecompose evaluates the seven-pairs pattern. Pairs must be
// distinct types: a count of four yields one pair and two dead copies.
func sevenPairsDecompose(counts *[34]int) (int, Decomposition) {
	d := Decomposition{Pattern: PatternSevenPairs}
	kinds := 0
	for id, n := range counts {
		if n == 0 {
			continue
		}
		kinds++
		t := tileFromID(id)
		switch {
		case n == 1:
			d.ValidFloats = append(d.ValidFloats, t)
		case n >= 2:
			d.Pairs = append(d.Pairs, t)
			for i := 0; i < n-2; i++ {
				d.InvalidFloats = append(d.InvalidFloats, t)
			}
		}
	}
	shanten := 6 - len(d.Pairs)
	if kinds < 7 {
		shanten += 7 - kinds
	}
	return shanten, d
}

type shantenDecomp struct {
	shanten int
	decomp  Decomposition
}

// orphansDecompose evaluates the thirteen-orphans pattern, emitting one
// decomposition per possible pair choice (or a single pairless one).
func orphansDecompose(counts *[34]int) []shantenDecomp {
	yaochuu := YaochuuTiles()
	var marks, pairChoices []Tile
	for _, t := range yaochuu {
		n := counts[t.ID()]
		if n >= 1 {
			marks = append(marks, t)
		}
		if n >= 2 {
			pairChoices = append(pairChoices, t)
		}
	}
	shanten := 13 - len(marks)
	if len(pairChoices) > 0 {
		shanten--
	}

	build := func(pair Tile, hasPair bool) Decomposition {
		d := Decomposition{
			Pattern:  PatternOrphans,
			Marks:    append([]Tile(nil), marks...),
			HasPair:  hasPair,
			PairTile: pair,
		}
		for id, n := range counts {
			if n == 0 {
				continue
			}
			t := tileFromID(id)
			if !t.IsYaochuu() {
				for i := 0; i < n; i++ {
					d.InvalidFloats = append(d.InvalidFloats, t)
				}
				continue
			}
			spare := n - 1
			if hasPair && t == pair {
				spare--
			}
			for i := 0; i < spare; i++ {
				d.InvalidFloats = append(d.InvalidFloats, t)
			}
		}
		sortTiles(d.InvalidFloats)
		return d
	}

	if len(pairChoices) == 0 {
		return []shantenDecomp{{shanten, build(Tile{}, false)}}
	}
	out := make([]shantenDecomp, 0, len(pairChoices))
	for _, pair := range pairChoices {
		out = append(out, shantenDecomp{shanten, build(pair, true)})
	}
	return out
}
