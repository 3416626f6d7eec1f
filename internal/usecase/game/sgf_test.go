package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julienbrg/game-of-go/internal/domain/game"
)

func testRecord() game.Record {
	return game.Record{
		GameID:        1,
		GameKeySecret: "secret",
		GameKeyPublic: "12345",
		PlayerBlack:   "alice",
		PlayerWhite:   "bob",
		CreatedAt:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Komi:          6.5,
	}
}

func TestSerializeSGFRoot(t *testing.T) {
	s := PrepareSgfFile(testRecord())
	text := SerializeSGF(&s)

	assert.Equal(t, "(;FF[4]GM[1]SZ[19]PB[alice]PW[bob]DT[2025-03-01]KM[6.5]RU[Chinese])", text)
}

func TestCoordsToSgfRoundtrip(t *testing.T) {
	assert.Equal(t, "aa", CoordsToSgf(0, 0))
	assert.Equal(t, "ss", CoordsToSgf(18, 18))

	x, y, ok := SgfToCoords("qc")
	require.True(t, ok)
	assert.Equal(t, 16, x)
	assert.Equal(t, 2, y)

	_, _, ok = SgfToCoords("")
	assert.False(t, ok)
	_, _, ok = SgfToCoords("zz")
	assert.False(t, ok)
}

func TestAppendMoveToSgf(t *testing.T) {
	s := PrepareSgfFile(testRecord())
	text := SerializeSGF(&s)

	text = AppendMoveToSgf(text, "B", 16, 2)
	text = AppendMoveToSgf(text, "W", 2, 16)
	text = AppendPassToSgf(text, "B")

	assert.True(t, len(text) > 0 && text[len(text)-1] == ')')
	assert.Contains(t, text, ";B[qc];W[cq];B[]")
}

func TestReplayMovesFromSgf(t *testing.T) {
	s := PrepareSgfFile(testRecord())
	text := SerializeSGF(&s)
	text = AppendMoveToSgf(text, "B", 3, 3)
	text = AppendMoveToSgf(text, "W", 15, 15)
	text = AppendPassToSgf(text, "B")

	eng := game.NewGame("alice", "bob")
	require.NoError(t, ReplayMovesFromSgf(text, eng, "alice", "bob"))

	assert.Equal(t, game.Black, eng.GetIntersection(game.PositionOf(3, 3)).State)
	assert.Equal(t, game.White, eng.GetIntersection(game.PositionOf(15, 15)).State)
	assert.True(t, eng.BlackPassedOnce())
	assert.Equal(t, game.White, eng.Turn())
}

func TestReplayRejectsMalformedSgf(t *testing.T) {
	eng := game.NewGame("alice", "bob")
	assert.Error(t, ReplayMovesFromSgf("(;B[q)", eng, "alice", "bob"))
}
