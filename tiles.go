package main

// Tile-set level operations: validity per player count, neighbor lookup,
// and the fixed enumerations the analyzers iterate over.

// Valid reports whether the tile exists in the given mode. Three-player
// mahjong keeps only ranks 1 and 9 of the Character suit.
func (t Tile) Valid(pc PlayerCount) bool {
	switch t.Suit {
	case Character:
		if pc == ThreePlayers {
			return t.Rank == 1 || t.Rank == 9
		}
		return t.Rank >= 1 && t.Rank <= 9
	case Dot, Bamboo:
		return t.Rank >= 1 && t.Rank <= 9
	case Honor:
		return t.Rank >= 1 && t.Rank <= 7
	}
	return false
}

// Prev returns the preceding tile within the suit. Without doraWrap the
// rank-1 tiles (and honor 1, wind/dragon boundaries aside) have no
// predecessor. With doraWrap suited tiles wrap 1 to 9, winds wrap within
// 1-4 and dragons within 5-7; in three-player mode Character wraps only
// between 1 and 9. Wait computation never sets doraWrap.
func (t Tile) Prev(pc PlayerCount, doraWrap bool) (Tile, bool) {
	switch t.Suit {
	case Character:
		if pc == ThreePlayers {
			if !doraWrap {
				return Tile{}, false
			}
			switch t.Rank {
			case 1:
				return Tile{Character, 9}, true
			case 9:
				return Tile{Character, 1}, true
			}
			return Tile{}, false
		}
		fallthrough
	case Dot, Bamboo:
		if t.Rank > 1 {
			return Tile{t.Suit, t.Rank - 1}, true
		}
		if doraWrap {
			return Tile{t.Suit, 9}, true
		}
		return Tile{}, false
	case Honor:
		if doraWrap {
			switch t.Rank {
			case 1:
				return Tile{Honor, 4}, true
			case 5:
				return Tile{Honor, 7}, true
			}
			return Tile{Honor, t.Rank - 1}, true
		}
		if t.Rank > 1 {
			return Tile{Honor, t.Rank - 1}, true
		}
		return Tile{}, false
	}
	return Tile{}, false
}

// Next returns the following tile within the suit; see Prev for the wrap
// rules.
func (t Tile) Next(pc PlayerCount, doraWrap bool) (Tile, bool) {
	switch t.Suit {
	case Character:
		if pc == ThreePlayers {
			if !doraWrap {
				return Tile{}, false
			}
			switch t.Rank {
			case 1:
				return Tile{Character, 9}, true
			case 9:
				return Tile{Character, 1}, true
			}
			return Tile{}, false
		}
		fallthrough
	case Dot, Bamboo:
		if t.Rank < 9 {
			return Tile{t.Suit, t.Rank + 1}, true
		}
		if doraWrap {
			return Tile{t.Suit, 1}, true
		}
		return Tile{}, false
	case Honor:
		if doraWrap {
			switch t.Rank {
			case 4:
				return Tile{Honor, 1}, true
			case 7:
				return Tile{Honor, 5}, true
			}
			return Tile{Honor, t.Rank + 1}, true
		}
		if t.Rank < 7 {
			return Tile{Honor, t.Rank + 1}, true
		}
		return Tile{}, false
	}
	return Tile{}, false
}

// AllTiles enumerates every valid tile type in order: 34 types in
// four-player mode, 27 in three-player mode.
func AllTiles(pc PlayerCount) []Tile {
	tiles := make([]Tile, 0, 34)
	if pc == ThreePlayers {
		tiles = append(tiles, Tile{Character, 1}, Tile{Character, 9})
	} else {
		for r := uint8(1); r <= 9; r++ {
			tiles = append(tiles, Tile{Character, r})
		}
	}
	for r := uint8(1); r <= 9; r++ {
		tiles = append(tiles, Tile{Dot, r})
	}
	for r := uint8(1); r <= 9; r++ {
		tiles = append(tiles, Tile{Bamboo, r})
	}
	for r := uint8(1); r <= 7; r++ {
		tiles = append(tiles, Tile{Honor, r})
	}
	return tiles
}

// YaochuuTiles returns the 13 terminal-and-honor tile types in order.
func YaochuuTiles() []Tile {
	return []Tile{
		{Character, 1}, {Character, 9},
		{Dot, 1}, {Dot, 9},
		{Bamboo, 1}, {Bamboo, 9},
		{Honor, 1}, {Honor, 2}, {Honor, 3}, {Honor, 4},
		{Honor, 5}, {Honor, 6}, {Honor, 7},
	}
}
