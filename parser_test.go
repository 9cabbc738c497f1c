package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHandChaoticInput(t *testing.T) {
	hand := mustParseHand(t, "99m2p [5555z] 1z12m 2p45s35m", FourPlayers)
	assert.Equal(t, []Tile{
		{Character, 1}, {Character, 2}, {Character, 3}, {Character, 5},
		{Character, 9}, {Character, 9},
		{Dot, 2}, {Dot, 2},
		{Bamboo, 4}, {Bamboo, 5},
		{Honor, 1},
	}, hand.Free)
	require.Len(t, hand.Fixed, 1)
	assert.Equal(t, Meld{Kind: MeldQuad, Tile: Tile{Honor, 5}}, hand.Fixed[0])
}

func TestParseHandEquivalentSpellings(t *testing.T) {
	a := mustParseHand(t, "1m2m3m4m4m5m4p4p4p5p8s[1z1z1z]", FourPlayers)
	b := mustParseHand(t, "123445m4445p8s[111z]", FourPlayers)
	c := mustParseHand(t, "45p 8s14 4m[11 1z]2 5m44p 3m", FourPlayers)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestParseHandRoundTrip(t *testing.T) {
	hand := mustParseHand(t, "99m2p[5555z]1z12m2p45s35m", FourPlayers)
	again := mustParseHand(t, hand.String(), FourPlayers)
	assert.Equal(t, hand, again)
}

func TestParseHandErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"unused suit letter", "m", ErrParse},
		{"unused suit letter after meld", "[111z]p", ErrParse},
		{"invalid honor rank", "8z", ErrParse},
		{"invalid honor rank nine", "119z", ErrParse},
		{"nested bracket", "[11[1z]", ErrParse},
		{"unmatched close", "123m]", ErrParse},
		{"digits pending at bracket", "12[333z]", ErrParse},
		{"digits pending at close", "[12]", ErrParse},
		{"two-tile meld", "[12z]", ErrParse},
		{"unknown character", "123x", ErrParse},
		{"invalid meld", "[124m]", ErrParse},
		{"meld too small", "[11z]", ErrParse},
		{"trailing digits", "123m45", ErrParse},
		{"unclosed bracket", "[123m", ErrParse},
		{"fifth copy", "11111m", ErrCapacity},
		{"fifth copy across meld", "1m[1111m]", ErrCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseHand(tc.input, FourPlayers)
			require.Error(t, err)
			var terr *Error
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tc.kind, terr.Kind)
		})
	}
}

func TestParseHandThreePlayer(t *testing.T) {
	_, err := ParseHand("234m", ThreePlayers)
	assert.Error(t, err, "2m-8m do not exist in three-player mode")

	hand := mustParseHand(t, "1199m", ThreePlayers)
	assert.Len(t, hand.Free, 4)
}

func TestParseTiles(t *testing.T) {
	tiles, err := ParseTiles("231m5z", FourPlayers)
	require.NoError(t, err)
	// Input order is preserved.
	assert.Equal(t, []Tile{{Character, 2}, {Character, 3}, {Character, 1}, {Honor, 5}}, tiles)

	_, err = ParseTiles("", FourPlayers)
	assert.Error(t, err)
	_, err = ParseTiles("12", FourPlayers)
	assert.Error(t, err)
	_, err = ParseTiles("5m", ThreePlayers)
	assert.Error(t, err)

	// More than four copies are allowed here; the wall enforces bounds.
	tiles, err = ParseTiles("11111z", FourPlayers)
	require.NoError(t, err)
	assert.Len(t, tiles, 5)
}
