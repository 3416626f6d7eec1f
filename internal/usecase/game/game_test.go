package game

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/julienbrg/game-of-go/internal/domain/game"
	errs "github.com/julienbrg/game-of-go/internal/errors"
	"github.com/julienbrg/game-of-go/internal/statuses"
)

// fakeStore keeps everything in maps, standing in for mongo and redis.
type fakeStore struct {
	games  map[string]game.Record
	sgf    map[string]string
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games: make(map[string]game.Record),
		sgf:   make(map[string]string),
	}
}

func (f *fakeStore) GenerateGameKeys(ctx context.Context) (string, string) {
	n := len(f.games)
	return fmt.Sprintf("secret-%d", n), fmt.Sprintf("%05d", n)
}

func (f *fakeStore) NextGameID(ctx context.Context) (int64, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeStore) PutGame(ctx context.Context, rec game.Record) bool {
	f.games[rec.GameKeySecret] = rec
	return true
}

func (f *fakeStore) GetGameBySecretKey(ctx context.Context, key string) (game.Record, error) {
	rec, ok := f.games[key]
	if !ok {
		return game.Record{}, errs.ErrGameNotFound
	}
	return rec, nil
}

func (f *fakeStore) GetGameByPublicKey(ctx context.Context, pub string) (game.Record, error) {
	for _, rec := range f.games {
		if rec.GameKeyPublic == pub && rec.Status != statuses.StatusEnded {
			return rec, nil
		}
	}
	return game.Record{}, errs.ErrGameNotFound
}

func (f *fakeStore) SetPlayer(ctx context.Context, key string, userID string, color game.Color) (game.Record, error) {
	rec, ok := f.games[key]
	if !ok {
		return game.Record{}, errs.ErrGameNotFound
	}
	if color == game.Black {
		rec.PlayerBlack = userID
	} else {
		rec.PlayerWhite = userID
	}
	now := time.Now()
	rec.Status = statuses.StatusInProgress
	rec.StartedAt = &now
	f.games[key] = rec
	return rec, nil
}

func (f *fakeStore) SaveResult(ctx context.Context, rec game.Record) error {
	stored, ok := f.games[rec.GameKeySecret]
	if !ok {
		return errs.ErrGameNotFound
	}
	stored.Status = statuses.StatusEnded
	stored.CapturedWhite = rec.CapturedWhite
	stored.CapturedBlack = rec.CapturedBlack
	stored.BlackScore = rec.BlackScore
	stored.WhiteScore = rec.WhiteScore
	f.games[rec.GameKeySecret] = stored
	return nil
}

func (f *fakeStore) SaveSGFToRedis(key string, sgfText string) error {
	f.sgf[key] = sgfText
	return nil
}

func (f *fakeStore) LoadSGFFromRedis(key string) (string, error) {
	text, ok := f.sgf[key]
	if !ok {
		return "", errs.ErrGameNotFound
	}
	return text, nil
}

func newTestUseCase(store GameStore) *GameUseCase {
	return NewGameUseCase(store, zap.NewNop().Sugar())
}

func createAndJoin(t *testing.T, uc *GameUseCase) (secret string) {
	t.Helper()
	ctx := context.Background()

	resp, err := uc.CreateGame(ctx, game.CreateGameRequest{IsCreatorBlack: true, Komi: 6.5}, "alice")
	require.NoError(t, err)

	_, err = uc.JoinGame(ctx, resp.GameKeyPublic, "bob")
	require.NoError(t, err)

	return resp.GameKeySecret
}

func TestCreateGameAssignsIncrementingIDs(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)
	ctx := context.Background()

	first, err := uc.CreateGame(ctx, game.CreateGameRequest{IsCreatorBlack: true}, "alice")
	require.NoError(t, err)
	second, err := uc.CreateGame(ctx, game.CreateGameRequest{IsCreatorBlack: false}, "carol")
	require.NoError(t, err)

	recFirst, err := store.GetGameBySecretKey(ctx, first.GameKeySecret)
	require.NoError(t, err)
	recSecond, err := store.GetGameBySecretKey(ctx, second.GameKeySecret)
	require.NoError(t, err)

	assert.Equal(t, int64(1), recFirst.GameID)
	assert.Equal(t, int64(2), recSecond.GameID)
	assert.Equal(t, "alice", recFirst.PlayerBlack)
	assert.Equal(t, "carol", recSecond.PlayerWhite)
	assert.Equal(t, statuses.StatusWaitOpponent, recFirst.Status)
}

func TestJoinGameFillsFreeSeat(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)
	ctx := context.Background()

	resp, err := uc.CreateGame(ctx, game.CreateGameRequest{IsCreatorBlack: true}, "alice")
	require.NoError(t, err)

	rec, err := uc.JoinGame(ctx, resp.GameKeyPublic, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.PlayerBlack)
	assert.Equal(t, "bob", rec.PlayerWhite)
	assert.Equal(t, statuses.StatusInProgress, rec.Status)

	_, err = uc.JoinGame(ctx, resp.GameKeyPublic, "carol")
	assert.ErrorIs(t, err, errs.ErrJoinGameFailed)
}

func TestPlayAppendsToSgfRecord(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)
	ctx := context.Background()
	secret := createAndJoin(t, uc)

	resp, err := uc.Play(ctx, secret, "alice", 16, 2)
	require.NoError(t, err)
	assert.Contains(t, resp.SGF, ";B[qc]")
	assert.Equal(t, "white", resp.State.Turn)

	resp, err = uc.Play(ctx, secret, "bob", 2, 16)
	require.NoError(t, err)
	assert.Contains(t, resp.SGF, ";W[cq]")

	// Rules violations never reach the record.
	_, err = uc.Play(ctx, secret, "bob", 2, 16)
	assert.ErrorIs(t, err, errs.ErrNotYourTurn)
	text, err := store.LoadSGFFromRedis(secret)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(text, ";W["))
}

func TestDoublePassPersistsResult(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)
	ctx := context.Background()
	secret := createAndJoin(t, uc)

	_, err := uc.Play(ctx, secret, "alice", 3, 3)
	require.NoError(t, err)
	_, err = uc.Pass(ctx, secret, "bob")
	require.NoError(t, err)
	resp, err := uc.Pass(ctx, secret, "alice")
	require.NoError(t, err)

	assert.Equal(t, "ended", resp.State.Phase)
	assert.Equal(t, 1, resp.State.BlackScore)
	assert.Equal(t, 0, resp.State.WhiteScore)

	rec, err := store.GetGameBySecretKey(ctx, secret)
	require.NoError(t, err)
	assert.Equal(t, statuses.StatusEnded, rec.Status)
	assert.Equal(t, 1, rec.BlackScore)
	assert.Equal(t, 0, rec.WhiteScore)
}

// A second use case instance sharing the store rebuilds the engine from
// the SGF record, as happens after a restart.
func TestEngineRehydratesFromSgf(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)
	ctx := context.Background()
	secret := createAndJoin(t, uc)

	_, err := uc.Play(ctx, secret, "alice", 3, 3)
	require.NoError(t, err)
	_, err = uc.Play(ctx, secret, "bob", 15, 15)
	require.NoError(t, err)

	fresh := newTestUseCase(store)
	resp, err := fresh.State(ctx, secret)
	require.NoError(t, err)

	assert.Equal(t, "black", resp.State.Turn)
	assert.Equal(t, game.Black, resp.State.Board[game.PositionOf(3, 3)].State)
	assert.Equal(t, game.White, resp.State.Board[game.PositionOf(15, 15)].State)

	// And play continues from the rebuilt position.
	_, err = fresh.Play(ctx, secret, "alice", 4, 4)
	require.NoError(t, err)
}

func TestSubscribeDeliversEvents(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)
	ctx := context.Background()
	secret := createAndJoin(t, uc)

	var events []game.Event
	require.NoError(t, uc.Subscribe(ctx, secret, func(ev game.Event) {
		events = append(events, ev)
	}))

	_, err := uc.Play(ctx, secret, "alice", 3, 3)
	require.NoError(t, err)
	_, err = uc.Pass(ctx, secret, "bob")
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, game.EventMove, events[0].Type)
	assert.Equal(t, game.EventPass, events[1].Type)
}

func TestPlayUnknownGame(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	_, err := uc.Play(context.Background(), "missing", "alice", 0, 0)
	assert.ErrorIs(t, err, errs.ErrGameNotFound)
}
