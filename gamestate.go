package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// State is the interactive session's position in the draw/discard cycle.
type State uint8

const (
	AwaitInit        State = iota // no hand yet
	Full                          // 14 effective tiles: discard or kan
	ShortOne                      // 13 effective tiles: draw, chii, pon, or kan
	AwaitReplacement              // kan declared, replacement tile pending
)

func (s State) String() string {
	switch s {
	case AwaitInit:
		return "awaiting initialization"
	case Full:
		return "full tiles"
	case ShortOne:
		return "lacking one tile"
	case AwaitReplacement:
		return "awaiting replacement tile"
	}
	return "unknown"
}

// OpKind tags an interactive operation. Kan arrives from input as OpKan and
// is rewritten to its resolved form before it reaches the history.
type OpKind uint8

const (
	OpInitialize OpKind = iota
	OpDraw
	OpDiscard
	OpWallAdd
	OpWallDiscard
	OpChii
	OpPon
	OpKan          // unresolved kan input
	OpKanCalled    // daiminkan
	OpKanAdded     // kakan
	OpKanConcealed // ankan
)

// Operation is one reversible step of an interactive session. Only the
// fields relevant to the kind are set.
type Operation struct {
	Kind        OpKind
	Hand        Hand   // OpInitialize
	Tile        Tile   // OpDraw, OpDiscard
	Tiles       []Tile // wall batches
	Meld        Meld   // calls; a quad for the kan kinds
	CalledTile  Tile   // OpChii: the tile taken from the discard
	Replacement *Tile  // kan kinds: replacement draw, if given
	Strict      bool   // wall bound checking
}

func (op Operation) String() string {
	bang := ""
	if !op.Strict {
		bang = "!"
	}
	switch op.Kind {
	case OpInitialize:
		return "init " + op.Hand.String()
	case OpDraw:
		return "+" + bang + op.Tile.String()
	case OpDiscard:
		return "-" + op.Tile.String()
	case OpWallAdd:
		return "*" + bang + "+" + joinTiles(op.Tiles)
	case OpWallDiscard:
		return "*" + bang + "-" + joinTiles(op.Tiles)
	case OpChii:
		return fmt.Sprintf("chii %s call %s", op.Meld, op.CalledTile)
	case OpPon:
		return "pon " + op.Meld.String()
	case OpKan, OpKanCalled, OpKanAdded, OpKanConcealed:
		name := map[OpKind]string{
			OpKan:          "kan",
			OpKanCalled:    "daiminkan",
			OpKanAdded:     "kakan",
			OpKanConcealed: "ankan",
		}[op.Kind]
		s := name + " " + op.Meld.String()
		if op.Replacement != nil {
			s += " rinshan " + op.Replacement.String()
		}
		return s
	}
	return "unknown"
}

func joinTiles(tiles []Tile) string {
	var b strings.Builder
	for _, t := range tiles {
		b.WriteString(t.String())
	}
	return b.String()
}

type historyEntry struct {
	op            Operation
	priorState    State
	priorDiscards DiscardedSet
}

// Game is one interactive analysis session: a simulated wall, the player's
// hand, the player's own discard set, and a reversible operation log. All
// mutation is transactional against a pre-operation snapshot.
type Game struct {
	pc       PlayerCount
	wall     *Wall
	hand     *Hand
	discards DiscardedSet
	state    State
	history  []historyEntry
	logger   zerolog.Logger
}

// NewGame starts a fresh session with a full wall.
func NewGame(pc PlayerCount, logger zerolog.Logger) *Game {
	return &Game{
		pc:       pc,
		wall:     NewWall(pc),
		discards: make(DiscardedSet),
		state:    AwaitInit,
		logger:   logger,
	}
}

func (g *Game) State() State             { return g.state }
func (g *Game) Wall() *Wall              { return g.wall }
func (g *Game) Hand() *Hand              { return g.hand }
func (g *Game) Discards() DiscardedSet   { return g.discards }
func (g *Game) PlayerCount() PlayerCount { return g.pc }

// History lists the applied operations oldest-first.
func (g *Game) History() []Operation {
	ops := make([]Operation, len(g.history))
	for i, e := range g.history {
		ops[i] = e.op
	}
	return ops
}

// Analyze runs the wait analysis against the session's wall and discard
// set. The hand must be initialized.
func (g *Game) Analyze() (*Analysis, error) {
	if g.hand == nil {
		return nil, newErrorf(ErrStateMismatch, "not initialized")
	}
	return analyzeHand(*g.hand, g.pc, g.wall, g.discards)
}

type snapshot struct {
	wall     *Wall
	hand     *Hand
	discards DiscardedSet
	state    State
}

func (g *Game) snapshot() snapshot {
	s := snapshot{
		wall:     g.wall.Clone(),
		discards: g.discards.Clone(),
		state:    g.state,
	}
	if g.hand != nil {
		h := g.hand.Clone()
		s.hand = &h
	}
	return s
}

func (g *Game) restore(s snapshot) {
	g.wall = s.wall
	g.hand = s.hand
	g.discards = s.discards
	g.state = s.state
}

// Apply executes one operation atomically: on any failure the session is
// exactly as it was. On success the normalized operation is pushed onto the
// history together with the prior state and discard set.
func (g *Game) Apply(op Operation) error {
	before := g.snapshot()
	if err := g.apply(&op); err != nil {
		g.restore(before)
		return err
	}
	g.history = append(g.history, historyEntry{
		op:            op,
		priorState:    before.state,
		priorDiscards: before.discards,
	})
	g.logger.Debug().Str("op", op.String()).Stringer("state", g.state).Msg("operation applied")
	return nil
}

func (g *Game) apply(op *Operation) error {
	switch op.Kind {
	case OpWallAdd:
		return g.wallBatch(op.Tiles, op.Strict, true)
	case OpWallDiscard:
		return g.wallBatch(op.Tiles, op.Strict, false)
	case OpInitialize:
		return g.applyInitialize(op.Hand)
	case OpDraw:
		return g.applyDraw(op.Tile, op.Strict)
	case OpDiscard:
		return g.applyDiscard(op.Tile)
	case OpChii:
		return g.applyChii(op.Meld, op.CalledTile, op.Strict)
	case OpPon:
		return g.applyPon(op.Meld, op.Strict)
	case OpKan:
		return g.applyKan(op)
	}
	return newErrorf(ErrLogic, "unknown operation")
}

func (g *Game) wallBatch(tiles []Tile, strict, add bool) error {
	for _, t := range tiles {
		var clamped bool
		var err error
		if add {
			clamped, err = g.wall.Put(t, strict)
		} else {
			clamped, err = g.wall.Take(t, strict)
		}
		if err != nil {
			return err
		}
		if clamped {
			g.logger.Warn().Stringer("tile", t).Msg("wall count clamped")
		}
	}
	return nil
}

func (g *Game) applyInitialize(hand Hand) error {
	if g.state != AwaitInit {
		return newErrorf(ErrStateMismatch, "already initialized; only draw, discard, call, wall and back operations are allowed now")
	}
	size := hand.EffectiveSize()
	if size != 13 && size != 14 {
		return newErrorf(ErrHandContent, "a starting hand needs 13 or 14 effective tiles, got %d", size)
	}
	for _, t := range hand.Free {
		if _, err := g.wall.Take(t, true); err != nil {
			return err
		}
	}
	for _, m := range hand.Fixed {
		for _, t := range m.Tiles() {
			if _, err := g.wall.Take(t, true); err != nil {
				return err
			}
		}
	}
	h := hand.Clone()
	g.hand = &h
	if size == 14 {
		g.state = Full
	} else {
		g.state = ShortOne
	}
	return nil
}

func (g *Game) applyDraw(t Tile, strict bool) error {
	if g.state != ShortOne && g.state != AwaitReplacement {
		return newErrorf(ErrStateMismatch, "cannot draw in state '%s'", g.state)
	}
	clamped, err := g.wall.Take(t, strict)
	if err != nil {
		return err
	}
	if clamped {
		g.logger.Warn().Stringer("tile", t).Msg("wall count clamped")
	}
	g.hand.addFree(t)
	g.state = Full
	return nil
}

func (g *Game) applyDiscard(t Tile) error {
	if g.state != Full {
		return newErrorf(ErrStateMismatch, "cannot discard in state '%s'", g.state)
	}
	if !g.hand.removeFree(t) {
		return newErrorf(ErrHandContent, "no '%s' in hand to discard", t)
	}
	g.discards.Add(t)
	g.state = ShortOne
	return nil
}

func (g *Game) applyChii(meld Meld, called Tile, strict bool) error {
	if g.state != ShortOne {
		return newErrorf(ErrStateMismatch, "cannot chii in state '%s'", g.state)
	}
	if meld.Kind != MeldRun {
		return newErrorf(ErrLogic, "chii needs a run")
	}
	inMeld := false
	for _, t := range meld.Tiles() {
		if t == called {
			inMeld = true
		}
	}
	if !inMeld {
		return newErrorf(ErrHandContent, "called tile '%s' is not part of %s", called, meld)
	}
	clamped, err := g.wall.Take(called, strict)
	if err != nil {
		return err
	}
	if clamped {
		g.logger.Warn().Stringer("tile", called).Msg("wall count clamped")
	}
	skippedCalled := false
	for _, t := range meld.Tiles() {
		if t == called && !skippedCalled {
			skippedCalled = true
			continue
		}
		if !g.hand.removeFree(t) {
			return newErrorf(ErrHandContent, "no '%s' in hand for the chii", t)
		}
	}
	g.hand.Fixed = append(g.hand.Fixed, meld)
	g.state = Full
	return nil
}

func (g *Game) applyPon(meld Meld, strict bool) error {
	if g.state != ShortOne {
		return newErrorf(ErrStateMismatch, "cannot pon in state '%s'", g.state)
	}
	if meld.Kind != MeldTriplet {
		return newErrorf(ErrLogic, "pon needs a triplet")
	}
	clamped, err := g.wall.Take(meld.Tile, strict)
	if err != nil {
		return err
	}
	if clamped {
		g.logger.Warn().Stringer("tile", meld.Tile).Msg("wall count clamped")
	}
	for i := 0; i < 2; i++ {
		if !g.hand.removeFree(meld.Tile) {
			return newErrorf(ErrHandContent, "no '%s' in hand for the pon", meld.Tile)
		}
	}
	g.hand.Fixed = append(g.hand.Fixed, meld)
	g.state = Full
	return nil
}

// applyKan resolves the ambiguous kan input against the current state and
// hand contents, performs it, and rewrites op.Kind to the resolved form.
func (g *Game) applyKan(op *Operation) error {
	if op.Meld.Kind != MeldQuad {
		return newErrorf(ErrLogic, "kan needs a quad")
	}
	t := op.Meld.Tile
	inFree := 0
	for _, ft := range g.hand.freeOrEmpty() {
		if ft == t {
			inFree++
		}
	}
	tripletIdx := -1
	if g.hand != nil {
		for i, m := range g.hand.Fixed {
			if m.Kind == MeldTriplet && m.Tile == t {
				tripletIdx = i
				break
			}
		}
	}

	switch g.state {
	case Full:
		switch {
		case inFree == 1 && tripletIdx >= 0:
			// Added kan: promote the called triplet.
			g.hand.removeFree(t)
			g.hand.Fixed[tripletIdx] = Meld{Kind: MeldQuad, Tile: t}
			op.Kind = OpKanAdded
		case inFree == 4 && tripletIdx < 0:
			// Concealed kan: all four drawn naturally.
			for i := 0; i < 4; i++ {
				g.hand.removeFree(t)
			}
			g.hand.Fixed = append(g.hand.Fixed, op.Meld)
			op.Kind = OpKanConcealed
		default:
			return newErrorf(ErrHandContent, "not enough '%s' to take a kan", t)
		}
	case ShortOne:
		if inFree != 3 {
			return newErrorf(ErrHandContent, "not enough '%s' to take a kan", t)
		}
		// Called kan from an opponent's discard.
		clamped, err := g.wall.Take(t, op.Strict)
		if err != nil {
			return err
		}
		if clamped {
			g.logger.Warn().Stringer("tile", t).Msg("wall count clamped")
		}
		for i := 0; i < 3; i++ {
			g.hand.removeFree(t)
		}
		g.hand.Fixed = append(g.hand.Fixed, op.Meld)
		op.Kind = OpKanCalled
	default:
		return newErrorf(ErrStateMismatch, "cannot kan in state '%s'", g.state)
	}

	if op.Replacement != nil {
		clamped, err := g.wall.Take(*op.Replacement, op.Strict)
		if err != nil {
			return err
		}
		if clamped {
			g.logger.Warn().Stringer("tile", *op.Replacement).Msg("wall count clamped")
		}
		g.hand.addFree(*op.Replacement)
		g.state = Full
	} else {
		g.state = AwaitReplacement
	}
	return nil
}

func (h *Hand) freeOrEmpty() []Tile {
	if h == nil {
		return nil
	}
	return h.Free
}

// Undo reverts the most recent operation. In strict mode the inverse wall
// mutations are bound-checked; a failed undo leaves the session untouched
// and the history entry in place.
func (g *Game) Undo(strict bool) error {
	if len(g.history) == 0 {
		return newErrorf(ErrStateMismatch, "no more operations to undo")
	}
	entry := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	before := g.snapshot()
	if err := g.invert(entry.op, strict); err != nil {
		g.restore(before)
		g.history = append(g.history, entry)
		return err
	}
	g.state = entry.priorState
	g.discards = entry.priorDiscards
	g.logger.Debug().Str("op", entry.op.String()).Stringer("state", g.state).Msg("operation undone")
	return nil
}

func (g *Game) invert(op Operation, strict bool) error {
	wallPut := func(t Tile) error {
		clamped, err := g.wall.Put(t, strict)
		if err != nil {
			return err
		}
		if clamped {
			g.logger.Warn().Stringer("tile", t).Msg("wall count clamped during undo")
		}
		return nil
	}
	wallTake := func(t Tile) error {
		clamped, err := g.wall.Take(t, strict)
		if err != nil {
			return err
		}
		if clamped {
			g.logger.Warn().Stringer("tile", t).Msg("wall count clamped during undo")
		}
		return nil
	}
	removeFixed := func(kind MeldKind, t Tile) error {
		for i := len(g.hand.Fixed) - 1; i >= 0; i-- {
			m := g.hand.Fixed[i]
			if m.Kind == kind && m.Tile == t {
				g.hand.Fixed = append(g.hand.Fixed[:i], g.hand.Fixed[i+1:]...)
				return nil
			}
		}
		return newErrorf(ErrLogic, "meld %s missing while undoing", Meld{Kind: kind, Tile: t})
	}
	undoReplacement := func(r *Tile) error {
		if r == nil {
			return nil
		}
		if !g.hand.removeFree(*r) {
			return newErrorf(ErrLogic, "replacement tile '%s' missing while undoing", r)
		}
		return wallPut(*r)
	}

	switch op.Kind {
	case OpWallAdd:
		for _, t := range op.Tiles {
			if err := wallTake(t); err != nil {
				return err
			}
		}
	case OpWallDiscard:
		for _, t := range op.Tiles {
			if err := wallPut(t); err != nil {
				return err
			}
		}
	case OpInitialize:
		for _, t := range g.hand.Free {
			if err := wallPut(t); err != nil {
				return err
			}
		}
		for _, m := range g.hand.Fixed {
			for _, t := range m.Tiles() {
				if err := wallPut(t); err != nil {
					return err
				}
			}
		}
		g.hand = nil
	case OpDraw:
		if !g.hand.removeFree(op.Tile) {
			return newErrorf(ErrLogic, "tile '%s' missing while undoing draw", op.Tile)
		}
		return wallPut(op.Tile)
	case OpDiscard:
		g.hand.addFree(op.Tile)
	case OpChii:
		if err := removeFixed(MeldRun, op.Meld.Tile); err != nil {
			return err
		}
		skippedCalled := false
		for _, t := range op.Meld.Tiles() {
			if t == op.CalledTile && !skippedCalled {
				skippedCalled = true
				continue
			}
			g.hand.addFree(t)
		}
		return wallPut(op.CalledTile)
	case OpPon:
		if err := removeFixed(MeldTriplet, op.Meld.Tile); err != nil {
			return err
		}
		g.hand.addFree(op.Meld.Tile)
		g.hand.addFree(op.Meld.Tile)
		return wallPut(op.Meld.Tile)
	case OpKanCalled:
		if err := undoReplacement(op.Replacement); err != nil {
			return err
		}
		if err := removeFixed(MeldQuad, op.Meld.Tile); err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			g.hand.addFree(op.Meld.Tile)
		}
		return wallPut(op.Meld.Tile)
	case OpKanAdded:
		if err := undoReplacement(op.Replacement); err != nil {
			return err
		}
		reverted := false
		for i, m := range g.hand.Fixed {
			if m.Kind == MeldQuad && m.Tile == op.Meld.Tile {
				g.hand.Fixed[i] = Meld{Kind: MeldTriplet, Tile: op.Meld.Tile}
				reverted = true
				break
			}
		}
		if !reverted {
			return newErrorf(ErrLogic, "quad %s missing while undoing", op.Meld)
		}
		g.hand.addFree(op.Meld.Tile)
	case OpKanConcealed:
		if err := undoReplacement(op.Replacement); err != nil {
			return err
		}
		if err := removeFixed(MeldQuad, op.Meld.Tile); err != nil {
			return err
		}
		for i := 0; i < 4; i++ {
			g.hand.addFree(op.Meld.Tile)
		}
	default:
		return newErrorf(ErrLogic, "cannot undo operation '%s'", op)
	}
	return nil
}
