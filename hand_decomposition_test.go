package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decompose(t *testing.T, input string, pc PlayerCount) (int, []Decomposition) {
	t.Helper()
	hand := mustParseHand(t, input, pc)
	shanten, decomps, err := Decompose(hand, pc)
	require.NoError(t, err)
	require.NotEmpty(t, decomps)
	return shanten, decomps
}

func TestShantenNumbers(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		// Standard wins and near-wins.
		{"123m456p789s11222z", -1},
		{"123m456p789s12s455z", 0},
		{"123m456p789s11223z", 0},
		{"123m456p789s111z5p8s", 0},
		// Mixed seven-pairs / standard shape.
		{"112233m4478p3557s", 1},
		// Seven pairs win; also a standard win via twin runs.
		{"112233445566m77z", -1},
		// Thirteen orphans.
		{"129m19p19s1234567z", 0},
		{"119m19p19s1234567z", -1},
		{"19m19p19s12345677z", -1},
		{"12m999p9s12345667z", 2},
		{"159m159p159s12345z", 2},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			shanten, _ := decompose(t, tc.input, FourPlayers)
			assert.Equal(t, tc.want, shanten)
		})
	}
}

func TestDecomposeRejectsWrongSize(t *testing.T) {
	hand := mustParseHand(t, "123m456p789s1122z", FourPlayers) // 13 free tiles
	_, _, err := Decompose(hand, FourPlayers)
	assert.Error(t, err)
}

func TestDecomposeWithFixedMelds(t *testing.T) {
	// Two called melds leave eight free tiles; the meld slots still count.
	hand := mustParseHand(t, "123m44p78p9s[567s][111z]", FourPlayers)
	shanten, _, err := Decompose(hand, FourPlayers)
	require.NoError(t, err)
	assert.Equal(t, 0, shanten)

	// A quad occupies one group slot like a triplet.
	hand = mustParseHand(t, "123m44p78p9s[567s][1111z]", FourPlayers)
	shanten, _, err = Decompose(hand, FourPlayers)
	require.NoError(t, err)
	assert.Equal(t, 0, shanten)
}

func TestSevenPairsNeedsDistinctPairs(t *testing.T) {
	// Four copies give one seven-pairs pair, not two.
	hand := mustParseHand(t, "1111m225588p3399s", FourPlayers)
	shanten, decomps, err := Decompose(hand, FourPlayers)
	require.NoError(t, err)
	assert.Equal(t, 1, shanten)
	found := false
	for _, d := range decomps {
		if d.Pattern == PatternSevenPairs {
			found = true
			assert.Len(t, d.Pairs, 6)
			assert.Len(t, d.InvalidFloats, 2)
		}
	}
	assert.True(t, found, "seven-pairs decomposition expected in the optimal set")
}

func TestSevenPairsOnlyForConcealedFourteen(t *testing.T) {
	// With a fixed meld the seven-pairs pattern must not be considered.
	hand := mustParseHand(t, "1122334455p6s[789s]", FourPlayers)
	_, decomps, err := Decompose(hand, FourPlayers)
	require.NoError(t, err)
	for _, d := range decomps {
		assert.NotEqual(t, PatternSevenPairs, d.Pattern)
		assert.NotEqual(t, PatternOrphans, d.Pattern)
	}
}

func TestOrphanDecompositionPairChoices(t *testing.T) {
	// Two duplicate yaochuu types give one decomposition per pair choice.
	_, decomps := decompose(t, "12m999p9s12345667z", FourPlayers)
	var orphanDecomps []Decomposition
	for _, d := range decomps {
		if d.Pattern == PatternOrphans {
			orphanDecomps = append(orphanDecomps, d)
		}
	}
	require.Len(t, orphanDecomps, 2)
	for _, d := range orphanDecomps {
		assert.True(t, d.HasPair)
		// 2m plus the surplus copies are dead.
		assert.Contains(t, d.InvalidFloats, Tile{Character, 2})
	}
}

func TestStandardDecompositionFloatClassification(t *testing.T) {
	// Four melds plus two floats: a float can still become the head pair.
	_, decomps := decompose(t, "123m456p789s111z5p8s", FourPlayers)
	for _, d := range decomps {
		if d.Pattern != PatternStandard || len(d.Melds) != 4 {
			continue
		}
		assert.Empty(t, d.InvalidFloats)
		assert.ElementsMatch(t, []Tile{{Dot, 5}, {Bamboo, 8}}, d.ValidFloats)
		return
	}
	t.Fatal("no four-meld decomposition found")
}

func TestDecomposeIsExhaustive(t *testing.T) {
	// The winning hand decomposes both as twin runs and as seven pairs.
	shanten, decomps := decompose(t, "112233445566m77z", FourPlayers)
	require.Equal(t, -1, shanten)
	patterns := make(map[PatternKind]bool)
	for _, d := range decomps {
		patterns[d.Pattern] = true
	}
	assert.True(t, patterns[PatternStandard])
	assert.True(t, patterns[PatternSevenPairs])
}

func TestDecomposeDeduplicates(t *testing.T) {
	_, decomps := decompose(t, "111122m345678p99s", FourPlayers)
	seen := make(map[string]bool)
	for _, d := range decomps {
		key := d.key()
		assert.False(t, seen[key], "duplicate decomposition %q", key)
		seen[key] = true
	}
}

func TestShantenThreePlayer(t *testing.T) {
	hand := mustParseHand(t, "11m99m19p19s123567z", ThreePlayers)
	shanten, _, err := Decompose(hand, ThreePlayers)
	require.NoError(t, err)
	assert.Equal(t, 0, shanten)
}
