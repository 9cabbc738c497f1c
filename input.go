package main

import "strings"

// CommandKind enumerates everything a REPL line can mean.
type CommandKind uint8

const (
	CmdInteractive CommandKind = iota
	CmdNoninteractive
	CmdPlayers
	CmdFormat
	CmdExit
	CmdState
	CmdDisplay
	CmdHistory
	CmdHelp
	CmdBack
	CmdOperation
	CmdHandInput
)

// Command is one parsed REPL line.
type Command struct {
	Kind    CommandKind
	Players PlayerCount
	Format  OutputFormat
	Strict  bool
	Op      Operation
	Hand    Hand
}

// ParseCommand turns a trimmed input line into a Command. Tile arguments
// are validated against the active player count. Anything that is not a
// keyword or an operator is treated as a hand description.
func ParseCommand(line string, pc PlayerCount) (Command, error) {
	switch line {
	case "i", "interactive":
		return Command{Kind: CmdInteractive}, nil
	case "ni", "noninteractive":
		return Command{Kind: CmdNoninteractive}, nil
	case "3pl", "3-player":
		return Command{Kind: CmdPlayers, Players: ThreePlayers}, nil
	case "4pl", "4-player":
		return Command{Kind: CmdPlayers, Players: FourPlayers}, nil
	case "std", "standard":
		return Command{Kind: CmdFormat, Format: FormatStandard}, nil
	case "json":
		return Command{Kind: CmdFormat, Format: FormatJSON}, nil
	case "q", "quit", "exit":
		return Command{Kind: CmdExit}, nil
	case "h", "help":
		return Command{Kind: CmdHelp}, nil
	case "s", "state":
		return Command{Kind: CmdState}, nil
	case "d", "display":
		return Command{Kind: CmdDisplay}, nil
	case "log", "history":
		return Command{Kind: CmdHistory}, nil
	case "b", "back":
		return Command{Kind: CmdBack, Strict: true}, nil
	case "b!", "back!":
		return Command{Kind: CmdBack, Strict: false}, nil
	}
	return parseWithArgument(line, pc)
}

func parseWithArgument(line string, pc PlayerCount) (Command, error) {
	if len(line) == 0 {
		return Command{}, newErrorf(ErrParse, "empty command")
	}
	switch line[0] {
	case '+', '-', '*', '>':
		return parseOperator(line, pc)
	}
	hand, err := ParseHand(line, pc)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdHandInput, Hand: hand}, nil
}

func parseOperator(line string, pc PlayerCount) (Command, error) {
	operator := line[0]
	rest := line[1:]
	strict := true
	if strings.HasPrefix(rest, "!") {
		strict = false
		rest = rest[1:]
	}

	switch operator {
	case '+':
		tiles, err := ParseTiles(rest, pc)
		if err != nil {
			return Command{}, err
		}
		if len(tiles) != 1 {
			return Command{}, newErrorf(ErrParse, "can only draw one tile with the '+' operator")
		}
		return Command{Kind: CmdOperation, Op: Operation{Kind: OpDraw, Tile: tiles[0], Strict: strict}}, nil
	case '-':
		tiles, err := ParseTiles(rest, pc)
		if err != nil {
			return Command{}, err
		}
		if len(tiles) != 1 {
			return Command{}, newErrorf(ErrParse, "can only discard one tile with the '-' operator")
		}
		return Command{Kind: CmdOperation, Op: Operation{Kind: OpDiscard, Tile: tiles[0], Strict: strict}}, nil
	case '*':
		if len(rest) == 0 {
			return Command{}, newErrorf(ErrParse, "unresolved command: %s", line)
		}
		direction := rest[0]
		tiles, err := ParseTiles(rest[1:], pc)
		if err != nil {
			return Command{}, err
		}
		switch direction {
		case '+':
			return Command{Kind: CmdOperation, Op: Operation{Kind: OpWallAdd, Tiles: tiles, Strict: strict}}, nil
		case '-':
			return Command{Kind: CmdOperation, Op: Operation{Kind: OpWallDiscard, Tiles: tiles, Strict: strict}}, nil
		}
		return Command{}, newErrorf(ErrParse, "unresolved command: %s", line)
	case '>':
		return parseCall(rest, strict, pc)
	}
	return Command{}, newErrorf(ErrParse, "unresolved command: %s", line)
}

// parseCall resolves the '>' meld argument: three tiles are a chii (the
// literal last tile is the called one) or a pon, four identical tiles a kan
// without replacement, and four identical plus one other a kan with the
// replacement draw.
func parseCall(arg string, strict bool, pc PlayerCount) (Command, error) {
	tiles, err := ParseTiles(arg, pc)
	if err != nil {
		return Command{}, err
	}
	switch len(tiles) {
	case 3:
		meld, err := NewMeld(tiles, pc)
		if err != nil {
			return Command{}, newErrorf(ErrParse, "'%s' is not a valid meld", arg)
		}
		switch meld.Kind {
		case MeldRun:
			op := Operation{Kind: OpChii, Meld: meld, CalledTile: tiles[2], Strict: strict}
			return Command{Kind: CmdOperation, Op: op}, nil
		case MeldTriplet:
			return Command{Kind: CmdOperation, Op: Operation{Kind: OpPon, Meld: meld, Strict: strict}}, nil
		}
		return Command{}, newErrorf(ErrParse, "'%s' is not a valid meld", arg)
	case 4:
		meld, err := NewMeld(tiles, pc)
		if err != nil || meld.Kind != MeldQuad {
			return Command{}, newErrorf(ErrParse, "'%s' is not a valid meld", arg)
		}
		return Command{Kind: CmdOperation, Op: Operation{Kind: OpKan, Meld: meld, Strict: strict}}, nil
	case 5:
		sorted := append([]Tile(nil), tiles...)
		sortTiles(sorted)
		var kanTile, replacement Tile
		switch {
		case sorted[0] == sorted[3] && sorted[0] != sorted[4]:
			kanTile, replacement = sorted[0], sorted[4]
		case sorted[1] == sorted[4] && sorted[0] != sorted[4]:
			kanTile, replacement = sorted[4], sorted[0]
		default:
			return Command{}, newErrorf(ErrParse, "'%s' is not a valid meld", arg)
		}
		op := Operation{
			Kind:        OpKan,
			Meld:        Meld{Kind: MeldQuad, Tile: kanTile},
			Replacement: &replacement,
			Strict:      strict,
		}
		return Command{Kind: CmdOperation, Op: op}, nil
	}
	return Command{}, newErrorf(ErrParse, "unresolved command: >%s", arg)
}
