package main

import "sort"

// WaitCondition describes one candidate discard: the tiles the remaining
// hand would then be waiting to draw, with how many copies of each are
// still unseen, and whether the wait is furiten against the player's own
// discards.
type WaitCondition struct {
	Discard Tile
	Waits   map[Tile]int
	Furiten bool
}

// TotalWaits sums the remaining copies across all wait tiles.
func (c WaitCondition) TotalWaits() int {
	total := 0
	for _, n := range c.Waits {
		total += n
	}
	return total
}

// SortedWaits returns the wait tiles in display order.
func (c WaitCondition) SortedWaits() []Tile {
	tiles := make([]Tile, 0, len(c.Waits))
	for t := range c.Waits {
		tiles = append(tiles, t)
	}
	sortTiles(tiles)
	return tiles
}

// Analysis is the result of analyzing one hand: its shanten number and the
// wait condition per candidate discard. A winning hand (shanten -1) has no
// conditions.
type Analysis struct {
	Hand       Hand
	Shanten    int
	Conditions []WaitCondition
}

// AnalyzeHand is the stateless entry point: wait counts are reduced only by
// the hand's own copies.
func AnalyzeHand(hand Hand, pc PlayerCount) (*Analysis, error) {
	if len(hand.Free)%3 != 2 {
		return nil, newErrorf(ErrHandContent,
			"analysis needs a full hand (3k+2 concealed tiles), got %d", len(hand.Free))
	}
	return analyzeHand(hand, pc, nil, nil)
}

// analyzeHand derives shanten and per-discard waits. With a wall the
// remaining counts come from it and the discard set drives furiten;
// without, counts are four minus the player's own copies.
func analyzeHand(hand Hand, pc PlayerCount, wall *Wall, discards DiscardedSet) (*Analysis, error) {
	shanten, decomps, err := Decompose(hand, pc)
	if err != nil {
		return nil, err
	}
	result := &Analysis{Hand: hand.Clone(), Shanten: shanten}
	if shanten == -1 {
		return result, nil
	}
	groups := hand.EffectiveSize() / 3

	// Candidate discards: dead floats across all optimal decompositions. A
	// seven-pairs decomposition with nothing dead offers its singles (any
	// unpaired tile may go). When no decomposition offers anything, any
	// float is a reasonable discard.
	candidateSet := make(map[Tile]struct{})
	for _, d := range decomps {
		for _, f := range d.discardables() {
			candidateSet[f] = struct{}{}
		}
	}
	fallback := len(candidateSet) == 0
	if fallback {
		for _, d := range decomps {
			for _, f := range d.ValidFloats {
				candidateSet[f] = struct{}{}
			}
		}
	}

	for discard := range candidateSet {
		waits := make(map[Tile]struct{})
		for _, d := range decomps {
			if !decompOffers(d, discard, fallback) {
				continue
			}
			switch d.Pattern {
			case PatternStandard:
				standardWaits(d, discard, groups, len(hand.Fixed), pc, waits)
			case PatternSevenPairs:
				sevenPairsWaits(d, discard, pc, waits)
			case PatternOrphans:
				orphansWaits(d, waits)
			}
		}
		cond := finalizeCondition(hand, discard, waits, wall, discards)
		if len(cond.Waits) == 0 {
			continue
		}
		result.Conditions = append(result.Conditions, cond)
	}

	sort.Slice(result.Conditions, func(i, j int) bool {
		ti, tj := result.Conditions[i].TotalWaits(), result.Conditions[j].TotalWaits()
		if ti != tj {
			return ti > tj
		}
		return result.Conditions[i].Discard.Less(result.Conditions[j].Discard)
	})
	return result, nil
}

// decompOffers reports whether the decomposition proposes this discard.
func decompOffers(d Decomposition, discard Tile, fallback bool) bool {
	for _, f := range d.discardables() {
		if f == discard {
			return true
		}
	}
	if fallback {
		for _, f := range d.ValidFloats {
			if f == discard {
				return true
			}
		}
	}
	return false
}

// standardWaits adds the waits one standard decomposition yields after the
// discard. Decompositions whose blocks already exceed the slot budget
// cannot improve and are skipped; the head pair does not count against the
// budget.
func standardWaits(d Decomposition, discard Tile, groups, fixed int, pc PlayerCount, waits map[Tile]struct{}) {
	melds := len(d.Melds) + fixed
	partials := len(d.Partials)
	pairs := len(d.Pairs)
	surplusPairs := pairs - 1
	if surplusPairs < 0 {
		surplusPairs = 0
	}
	if melds+partials > groups || melds+partials+surplusPairs > groups {
		return
	}

	for _, p := range d.Partials {
		if p.Gapped() {
			waits[Tile{Suit: p.A.Suit, Rank: p.A.Rank + 1}] = struct{}{}
			continue
		}
		if prev, ok := p.A.Prev(pc, false); ok {
			waits[prev] = struct{}{}
		}
		if next, ok := p.B.Next(pc, false); ok {
			waits[next] = struct{}{}
		}
	}

	if pairs >= 2 {
		for _, p := range d.Pairs {
			waits[p] = struct{}{}
		}
	}

	// Remaining slack lets a float grow into a new pair, and with room to
	// spare, into a partial as well.
	slack := groups + 1 - (melds + partials + pairs)
	if slack <= 0 {
		return
	}
	skippedDiscard := false
	for _, f := range d.floats() {
		if f == discard && !skippedDiscard {
			skippedDiscard = true
			continue
		}
		waits[f] = struct{}{}
		if slack > 1 && !f.IsHonor() {
			for _, n := range neighborhood(f, pc) {
				waits[n] = struct{}{}
			}
		}
	}
}

// neighborhood lists the suited tiles within distance two of f, never
// wrapping.
func neighborhood(f Tile, pc PlayerCount) []Tile {
	var out []Tile
	if prev, ok := f.Prev(pc, false); ok {
		out = append(out, prev)
		if prev2, ok := prev.Prev(pc, false); ok {
			out = append(out, prev2)
		}
	}
	if next, ok := f.Next(pc, false); ok {
		out = append(out, next)
		if next2, ok := next.Next(pc, false); ok {
			out = append(out, next2)
		}
	}
	return out
}

// sevenPairsWaits adds the seven-pairs waits: with enough pair material the
// singles pair up among themselves, otherwise any unheld type helps.
func sevenPairsWaits(d Decomposition, discard Tile, pc PlayerCount, waits map[Tile]struct{}) {
	if len(d.Pairs)+len(d.ValidFloats) >= 7 {
		for _, f := range d.ValidFloats {
			if f != discard {
				waits[f] = struct{}{}
			}
		}
		return
	}
	paired := make(map[Tile]struct{}, len(d.Pairs))
	for _, p := range d.Pairs {
		paired[p] = struct{}{}
	}
	for _, t := range AllTiles(pc) {
		if _, ok := paired[t]; !ok {
			waits[t] = struct{}{}
		}
	}
}

// orphansWaits adds the thirteen-orphans waits: the missing yaochuu types,
// or all thirteen while no pair exists.
func orphansWaits(d Decomposition, waits map[Tile]struct{}) {
	held := make(map[Tile]struct{}, len(d.Marks))
	for _, m := range d.Marks {
		held[m] = struct{}{}
	}
	for _, t := range YaochuuTiles() {
		if d.HasPair {
			if _, ok := held[t]; ok {
				continue
			}
		}
		waits[t] = struct{}{}
	}
}

// finalizeCondition attaches remaining counts and furiten to a raw wait
// set. Waits with no copies left are dropped.
func finalizeCondition(hand Hand, discard Tile, waits map[Tile]struct{}, wall *Wall, discards DiscardedSet) WaitCondition {
	cond := WaitCondition{Discard: discard, Waits: make(map[Tile]int, len(waits))}
	var held map[Tile]int
	if wall == nil {
		held = hand.Counts()
		held[discard]--
	}
	for t := range waits {
		var remaining int
		if wall != nil {
			remaining = wall.Count(t)
		} else {
			remaining = 4 - held[t]
		}
		if remaining <= 0 {
			continue
		}
		cond.Waits[t] = remaining
		if discards != nil && discards.Contains(t) {
			cond.Furiten = true
		}
	}
	return cond
}
