package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

func main() {
	formatFlag := flag.String("format-type", "standard", "output format: standard or json")
	playersFlag := flag.Int("players-number", 4, "number of players: 3 or 4")
	interactiveLong := flag.Bool("interactive", false, "start in interactive mode")
	interactiveShort := flag.Bool("i", false, "start in interactive mode (shorthand)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var format OutputFormat
	switch *formatFlag {
	case "standard":
		format = FormatStandard
	case "json":
		format = FormatJSON
	default:
		fmt.Fprintf(os.Stderr, "invalid --format-type %q: want standard or json\n", *formatFlag)
		os.Exit(2)
	}

	var pc PlayerCount
	switch *playersFlag {
	case 3:
		pc = ThreePlayers
	case 4:
		pc = FourPlayers
	default:
		fmt.Fprintf(os.Stderr, "invalid --players-number %d: want 3 or 4\n", *playersFlag)
		os.Exit(2)
	}

	a := &app{pc: pc, format: format, logger: logger}
	if *interactiveLong || *interactiveShort {
		a.game = NewGame(pc, logger)
	}
	a.run()
}

// app is the REPL driver: it owns the output format, the player count, and
// the interactive session when one is active.
type app struct {
	pc     PlayerCount
	format OutputFormat
	game   *Game
	last   *Analysis
	logger zerolog.Logger
}

func (a *app) run() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		prompt := ""
		if a.format == FormatStandard {
			prompt = ">>> "
		}
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return
		}
		if err != nil {
			a.logger.Error().Err(err).Msg("reading input failed")
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		output, quit := a.execute(input)
		if output != "" {
			fmt.Println(output)
		}
		if quit {
			return
		}
	}
}

// execute handles one input line and returns the text to print.
func (a *app) execute(input string) (string, bool) {
	output, quit, err := a.executeCore(input)
	if err != nil {
		return a.header() + RenderError(err, a.format), false
	}
	if output != "" && !quit {
		output = a.header() + output
	}
	return output, quit
}

// header is the result banner of the standard format: player count plus
// interactive/non-interactive marker.
func (a *app) header() string {
	if a.format != FormatStandard {
		return ""
	}
	mode := "NI"
	if a.game != nil {
		mode = "I"
	}
	return fmt.Sprintf("<<< [%s,%s]\n", a.pc, mode)
}

func (a *app) executeCore(input string) (string, bool, error) {
	cmd, err := ParseCommand(input, a.pc)
	if err != nil {
		return "", false, err
	}

	switch cmd.Kind {
	case CmdExit:
		return "", true, nil
	case CmdHelp:
		return helpText, false, nil
	case CmdInteractive:
		a.game = NewGame(a.pc, a.logger)
		a.last = nil
		return "", false, nil
	case CmdNoninteractive:
		a.game = nil
		a.last = nil
		return "", false, nil
	case CmdFormat:
		a.format = cmd.Format
		return "", false, nil
	case CmdPlayers:
		a.pc = cmd.Players
		if a.game != nil {
			// Switching the tile set invalidates the session.
			a.game = NewGame(a.pc, a.logger)
			a.last = nil
		}
		return "", false, nil
	case CmdState:
		if a.game == nil {
			return "", false, newErrorf(ErrStateMismatch, "cannot execute interactive command in non-interactive mode")
		}
		return RenderGameState(a.game, a.format), false, nil
	case CmdHistory:
		if a.game == nil {
			return "", false, newErrorf(ErrStateMismatch, "cannot execute interactive command in non-interactive mode")
		}
		return RenderHistory(a.game, a.format), false, nil
	case CmdDisplay:
		if a.last == nil {
			return "", false, newErrorf(ErrStateMismatch, "no analysis to display yet")
		}
		return RenderAnalysis(a.last, a.format), false, nil
	case CmdBack:
		if a.game == nil {
			return "", false, newErrorf(ErrStateMismatch, "cannot execute interactive command in non-interactive mode")
		}
		if err := a.game.Undo(cmd.Strict); err != nil {
			return "", false, err
		}
		return a.analyzeIfFull()
	case CmdOperation:
		if a.game == nil {
			return "", false, newErrorf(ErrStateMismatch, "cannot execute interactive command in non-interactive mode")
		}
		if err := a.game.Apply(cmd.Op); err != nil {
			return "", false, err
		}
		return a.analyzeIfFull()
	case CmdHandInput:
		if a.game != nil {
			op := Operation{Kind: OpInitialize, Hand: cmd.Hand, Strict: true}
			if err := a.game.Apply(op); err != nil {
				return "", false, err
			}
			return a.analyzeIfFull()
		}
		analysis, err := AnalyzeHand(cmd.Hand, a.pc)
		if err != nil {
			return "", false, err
		}
		a.last = analysis
		return RenderAnalysis(analysis, a.format), false, nil
	}
	return "", false, newErrorf(ErrLogic, "unhandled command")
}

// analyzeIfFull re-analyzes after interactive operations that leave the
// hand full; other states produce no output.
func (a *app) analyzeIfFull() (string, bool, error) {
	if a.game.State() != Full {
		return "", false, nil
	}
	analysis, err := a.game.Analyze()
	if err != nil {
		return "", false, err
	}
	a.last = analysis
	return RenderAnalysis(analysis, a.format), false, nil
}
