package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat selects between the console rendering and the
// machine-readable JSON rendering.
type OutputFormat uint8

const (
	FormatStandard OutputFormat = iota
	FormatJSON
)

// RenderAnalysis formats one analysis result.
func RenderAnalysis(a *Analysis, format OutputFormat) string {
	if format == FormatJSON {
		return renderAnalysisJSON(a)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "手牌：%s\n", a.Hand)
	switch {
	case a.Shanten == -1:
		b.WriteString("和了")
	case a.Shanten == 0:
		b.WriteString("聴牌")
	default:
		fmt.Fprintf(&b, "向聴：%d", a.Shanten)
	}
	if a.Shanten >= 0 {
		b.WriteString("\n--------")
		for _, cond := range a.Conditions {
			fmt.Fprintf(&b, "\n打 %s 摸 %s 残り%d枚",
				cond.Discard, tilesString(cond.SortedWaits()), cond.TotalWaits())
			if cond.Furiten {
				b.WriteString("[!振り聴!]")
			}
		}
	}
	return b.String()
}

type tileCountJSON struct {
	Tile   string `json:"tile"`
	Number int    `json:"number"`
}

type conditionJSON struct {
	Sutehai        string          `json:"sutehai"`
	Furiten        bool            `json:"furiten"`
	MachihaiNumber int             `json:"machihai_number"`
	Machihai       []tileCountJSON `json:"machihai"`
}

type meldJSON struct {
	Type string   `json:"type"`
	Hai  []string `json:"hai"`
}

type handJSON struct {
	Juntehai []string   `json:"juntehai"`
	Fuuro    []meldJSON `json:"fuuro"`
}

type analysisJSON struct {
	Tehai         handJSON        `json:"tehai"`
	ShantenNumber int             `json:"shanten_number"`
	Conditions    []conditionJSON `json:"conditions"`
}

func handToJSON(h Hand) handJSON {
	out := handJSON{Juntehai: make([]string, 0, len(h.Free)), Fuuro: make([]meldJSON, 0, len(h.Fixed))}
	for _, t := range h.Free {
		out.Juntehai = append(out.Juntehai, t.String())
	}
	for _, m := range h.Fixed {
		kind := map[MeldKind]string{MeldRun: "juntsu", MeldTriplet: "koutsu", MeldQuad: "kantsu"}[m.Kind]
		mj := meldJSON{Type: kind}
		for _, t := range m.Tiles() {
			mj.Hai = append(mj.Hai, t.String())
		}
		out.Fuuro = append(out.Fuuro, mj)
	}
	return out
}

func renderAnalysisJSON(a *Analysis) string {
	out := analysisJSON{
		Tehai:         handToJSON(a.Hand),
		ShantenNumber: a.Shanten,
		Conditions:    make([]conditionJSON, 0, len(a.Conditions)),
	}
	for _, cond := range a.Conditions {
		cj := conditionJSON{
			Sutehai:        cond.Discard.String(),
			Furiten:        cond.Furiten,
			MachihaiNumber: cond.TotalWaits(),
			Machihai:       make([]tileCountJSON, 0, len(cond.Waits)),
		}
		for _, t := range cond.SortedWaits() {
			cj.Machihai = append(cj.Machihai, tileCountJSON{Tile: t.String(), Number: cond.Waits[t]})
		}
		out.Conditions = append(out.Conditions, cj)
	}
	return marshalJSON(out)
}

// RenderError formats an error for the active output mode.
func RenderError(err error, format OutputFormat) string {
	if format == FormatJSON {
		return marshalJSON(map[string]string{"error": err.Error()})
	}
	return err.Error()
}

// RenderGameState formats the session's wall, discards, hand, and state.
func RenderGameState(g *Game, format OutputFormat) string {
	if format == FormatJSON {
		out := map[string]interface{}{
			"haiyama": wallToJSON(g),
			"sutehai": discardsToJSON(g),
			"state":   g.State().String(),
		}
		if g.Hand() != nil {
			out["tehai"] = handToJSON(*g.Hand())
		} else {
			out["tehai"] = "not initialized"
		}
		return marshalJSON(out)
	}

	var b strings.Builder
	b.WriteString("牌山：\n  ")
	for _, t := range AllTiles(g.PlayerCount()) {
		fmt.Fprintf(&b, "%s:%d", t, g.Wall().Count(t))
		if !t.IsHonor() && t.Rank == 9 {
			b.WriteString("\n  ")
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("\n捨て牌：")
	for _, t := range g.Discards().Sorted() {
		b.WriteByte(' ')
		b.WriteString(t.String())
	}
	b.WriteString("\n手牌：")
	if g.Hand() != nil {
		b.WriteString(g.Hand().String())
	} else {
		b.WriteString("not initialized")
	}
	fmt.Fprintf(&b, "\n状態：%s", g.State())
	return b.String()
}

func wallToJSON(g *Game) []map[string]int {
	out := make([]map[string]int, 0, 34)
	for _, t := range AllTiles(g.PlayerCount()) {
		out = append(out, map[string]int{t.String(): g.Wall().Count(t)})
	}
	return out
}

func discardsToJSON(g *Game) []string {
	tiles := g.Discards().Sorted()
	out := make([]string, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, t.String())
	}
	return out
}

// RenderHistory formats the operation log, oldest first.
func RenderHistory(g *Game, format OutputFormat) string {
	ops := g.History()
	if format == FormatJSON {
		lines := make([]string, 0, len(ops))
		for _, op := range ops {
			lines = append(lines, op.String())
		}
		return marshalJSON(map[string]interface{}{"history": lines})
	}
	if len(ops) == 0 {
		return "no operations yet"
	}
	var b strings.Builder
	for i, op := range ops {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%3d. %s", i+1, op)
	}
	return b.String()
}

func marshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Every value rendered here is marshalable; this guards refactors.
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(data)
}

const helpText = `commands:
  i / interactive        enter interactive mode (new session)
  ni / noninteractive    leave interactive mode
  3pl / 3-player         three-player tile set (resets any session)
  4pl / 4-player         four-player tile set (resets any session)
  std / standard         console output
  json                   JSON output
  s / state              show wall, discards, hand, and state
  d / display            show the last analysis again
  log / history          show the operation log
  b / back               undo the last operation (strict)
  b! / back!             undo without wall bound checks
  +TILE  / +!TILE        draw a tile, e.g. +5m
  -TILE                  discard a tile, e.g. -9p
  *+TILES / *!+TILES     put tiles back into the wall, e.g. *+123s
  *-TILES / *!-TILES     remove tiles from the wall
  >MELD  / >!MELD        call a meld: >123m (chii), >555z (pon),
                         >7777s (kan), >7777s3p (kan with replacement)
  q / quit / exit        leave
anything else is read as a hand, e.g. 123m456p78s[777z]55s`
