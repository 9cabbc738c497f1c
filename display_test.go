package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAnalysisStandard(t *testing.T) {
	a := analyzeFree(t, "123m456p789s11223z", FourPlayers)
	out := RenderAnalysis(a, FormatStandard)
	assert.Equal(t,
		"手牌：1m2m3m4p5p6p7s8s9s1z1z2z2z3z\n聴牌\n--------\n打 3z 摸 1z 2z 残り4枚",
		out)
}

func TestRenderAnalysisStandardWin(t *testing.T) {
	a := analyzeFree(t, "123m456p789s11222z", FourPlayers)
	out := RenderAnalysis(a, FormatStandard)
	assert.Equal(t, "手牌：1m2m3m4p5p6p7s8s9s1z1z2z2z2z\n和了", out)
}

func TestRenderAnalysisShantenNumber(t *testing.T) {
	a := analyzeFree(t, "12m999p9s12345667z", FourPlayers)
	out := RenderAnalysis(a, FormatStandard)
	assert.True(t, strings.HasPrefix(out, "手牌：1m2m9p9p9p9s1z2z3z4z5z6z6z7z\n向聴：2\n--------\n"), out)
	assert.Contains(t, out, "打 2m 摸 9m 1p 1s 残り12枚")
}

func TestRenderAnalysisJSON(t *testing.T) {
	a := analyzeFree(t, "129m19p19s1234567z", FourPlayers)
	out := RenderAnalysis(a, FormatJSON)

	var decoded struct {
		Tehai struct {
			Juntehai []string `json:"juntehai"`
			Fuuro    []struct {
				Type string   `json:"type"`
				Hai  []string `json:"hai"`
			} `json:"fuuro"`
		} `json:"tehai"`
		ShantenNumber int `json:"shanten_number"`
		Conditions    []struct {
			Sutehai        string `json:"sutehai"`
			Furiten        bool   `json:"furiten"`
			MachihaiNumber int    `json:"machihai_number"`
			Machihai       []struct {
				Tile   string `json:"tile"`
				Number int    `json:"number"`
			} `json:"machihai"`
		} `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Len(t, decoded.Tehai.Juntehai, 14)
	assert.Empty(t, decoded.Tehai.Fuuro)
	assert.Equal(t, 0, decoded.ShantenNumber)
	require.Len(t, decoded.Conditions, 1)
	cond := decoded.Conditions[0]
	assert.Equal(t, "2m", cond.Sutehai)
	assert.False(t, cond.Furiten)
	assert.Equal(t, 39, cond.MachihaiNumber)
	assert.Len(t, cond.Machihai, 13)
}

func TestRenderErrorJSON(t *testing.T) {
	err := newErrorf(ErrParse, "fifth %s found", Tile{Honor, 1})
	out := RenderError(err, FormatJSON)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "fifth 1z found", decoded["error"])

	assert.Equal(t, "fifth 1z found", RenderError(err, FormatStandard))
}

func TestRenderGameState(t *testing.T) {
	g := newTestGame(FourPlayers)
	initGame(t, g, "123m456p789s11223z")
	require.NoError(t, g.Apply(Operation{Kind: OpDiscard, Tile: Tile{Honor, 3}}))

	out := RenderGameState(g, FormatStandard)
	assert.Contains(t, out, "牌山：")
	assert.Contains(t, out, "1m:3")
	assert.Contains(t, out, "捨て牌： 3z")
	assert.Contains(t, out, "手牌：1m2m3m4p5p6p7s8s9s1z1z2z2z")
	assert.Contains(t, out, "状態：lacking one tile")

	jsonOut := RenderGameState(g, FormatJSON)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &decoded))
	assert.Contains(t, decoded, "haiyama")
	assert.Contains(t, decoded, "sutehai")
	assert.Contains(t, decoded, "tehai")
}

func TestRenderHistory(t *testing.T) {
	g := newTestGame(FourPlayers)
	assert.Equal(t, "no operations yet", RenderHistory(g, FormatStandard))

	initGame(t, g, "123m456p789s11223z")
	require.NoError(t, g.Apply(Operation{Kind: OpDiscard, Tile: Tile{Honor, 3}}))
	require.NoError(t, g.Apply(Operation{Kind: OpDraw, Tile: Tile{Honor, 4}, Strict: true}))

	out := RenderHistory(g, FormatStandard)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "init 1m2m3m4p5p6p7s8s9s1z1z2z2z3z")
	assert.Contains(t, lines[1], "-3z")
	assert.Contains(t, lines[2], "+4z")
}

func TestRenderFuritenMarker(t *testing.T) {
	g := newTestGame(FourPlayers)
	initGame(t, g, "123m456p789s11223z")
	require.NoError(t, g.Apply(Operation{Kind: OpDiscard, Tile: Tile{Honor, 1}}))
	require.NoError(t, g.Apply(Operation{Kind: OpDraw, Tile: Tile{Honor, 4}, Strict: true}))

	analysis, err := g.Analyze()
	require.NoError(t, err)
	out := RenderAnalysis(analysis, FormatStandard)
	assert.Contains(t, out, "打 3z 摸 1z 4z 残り5枚[!振り聴!]")
}
