package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/julienbrg/game-of-go/internal/domain/game"
	errs "github.com/julienbrg/game-of-go/internal/errors"
	"github.com/julienbrg/game-of-go/internal/statuses"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	NextGameID(ctx context.Context) (int64, error)
	PutGame(ctx context.Context, rec game.Record) bool
	GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Record, error)
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error)
	SetPlayer(ctx context.Context, gameKeySecret string, userID string, color game.Color) (game.Record, error)
	SaveResult(ctx context.Context, rec game.Record) error
	SaveSGFToRedis(key string, sgfText string) error
	LoadSGFFromRedis(key string) (string, error)
}

// GameUseCase manages the registry of games: persisted records in the
// store, live engines in memory keyed by secret key. Engines dropped from
// memory are rebuilt by replaying the SGF record.
type GameUseCase struct {
	store GameStore
	log   *zap.SugaredLogger

	mu     sync.Mutex
	active map[string]*game.Game
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		store:  store,
		log:    log,
		active: make(map[string]*game.Game),
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest, creatorID string) (game.CreateGameResponse, error) {
	gameKeySecret, gameKeyPublic := g.store.GenerateGameKeys(ctx)

	gameID, err := g.store.NextGameID(ctx)
	if err != nil {
		return game.CreateGameResponse{}, err
	}

	rec := game.Record{
		GameID:        gameID,
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		Status:        statuses.StatusWaitOpponent,
		CreatedAt:     time.Now(),
		Komi:          req.Komi,
	}

	if req.IsCreatorBlack {
		rec.PlayerBlack = creatorID
	} else {
		rec.PlayerWhite = creatorID
	}

	if ok := g.store.PutGame(ctx, rec); !ok {
		return game.CreateGameResponse{}, errs.ErrCreateGameFailed
	}

	minSGF := PrepareSgfFile(rec)
	if err := g.store.SaveSGFToRedis(gameKeySecret, SerializeSGF(&minSGF)); err != nil {
		return game.CreateGameResponse{}, err
	}

	return game.CreateGameResponse{
		GameKeyPublic: gameKeyPublic,
		GameKeySecret: gameKeySecret,
	}, nil
}

// JoinGame seats userID on the free side of the game and boots the live
// engine. Black moves first.
func (g *GameUseCase) JoinGame(ctx context.Context, gameKeyPublic string, userID string) (game.Record, error) {
	rec, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Record{}, err
	}

	var seat game.Color
	switch {
	case rec.PlayerBlack == "":
		seat = game.Black
	case rec.PlayerWhite == "":
		seat = game.White
	default:
		return game.Record{}, errs.ErrJoinGameFailed
	}

	updated, err := g.store.SetPlayer(ctx, rec.GameKeySecret, userID, seat)
	if err != nil {
		return game.Record{}, err
	}

	if _, err := g.engineFor(updated); err != nil {
		return game.Record{}, err
	}

	return updated, nil
}

func (g *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Record, error) {
	return g.store.GetGameBySecretKey(ctx, gameKeySecret)
}

func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error) {
	return g.store.GetGameByPublicKey(ctx, gameKeyPublic)
}

// engineFor returns the live engine of the game, rebuilding it from the
// SGF record when it is not in memory.
func (g *GameUseCase) engineFor(rec game.Record) (*game.Game, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if eng, ok := g.active[rec.GameKeySecret]; ok {
		return eng, nil
	}

	eng := game.NewGame(rec.PlayerBlack, rec.PlayerWhite)

	sgfText, err := g.store.LoadSGFFromRedis(rec.GameKeySecret)
	if err == nil {
		if replayErr := ReplayMovesFromSgf(sgfText, eng, rec.PlayerBlack, rec.PlayerWhite); replayErr != nil {
			return nil, replayErr
		}
	}

	g.active[rec.GameKeySecret] = eng
	return eng, nil
}

// Subscribe attaches an observer to the live engine of the game.
func (g *GameUseCase) Subscribe(ctx context.Context, gameKeySecret string, fn game.Observer) error {
	rec, err := g.store.GetGameBySecretKey(ctx, gameKeySecret)
	if err != nil {
		return err
	}
	eng, err := g.engineFor(rec)
	if err != nil {
		return err
	}
	eng.Subscribe(fn)
	return nil
}

// Play applies one stone placement for userID and appends it to the SGF
// record. Rules violations come back verbatim from the engine.
func (g *GameUseCase) Play(ctx context.Context, gameKeySecret string, userID string, x, y int) (game.StateResponse, error) {
	rec, err := g.store.GetGameBySecretKey(ctx, gameKeySecret)
	if err != nil {
		return game.StateResponse{}, err
	}

	eng, err := g.engineFor(rec)
	if err != nil {
		return game.StateResponse{}, err
	}

	if err := eng.Play(userID, x, y); err != nil {
		return game.StateResponse{}, err
	}

	sgfText, err := g.appendToSgf(rec, userID, func(s, letter string) string {
		return AppendMoveToSgf(s, letter, x, y)
	})
	if err != nil {
		return game.StateResponse{}, err
	}

	return game.StateResponse{State: eng.Snapshot(), SGF: sgfText}, nil
}

// Pass records a pass for userID. On the second consecutive pass the game
// ends and the result is persisted.
func (g *GameUseCase) Pass(ctx context.Context, gameKeySecret string, userID string) (game.StateResponse, error) {
	rec, err := g.store.GetGameBySecretKey(ctx, gameKeySecret)
	if err != nil {
		return game.StateResponse{}, err
	}

	eng, err := g.engineFor(rec)
	if err != nil {
		return game.StateResponse{}, err
	}

	if err := eng.Pass(userID); err != nil {
		return game.StateResponse{}, err
	}

	sgfText, err := g.appendToSgf(rec, userID, AppendPassToSgf)
	if err != nil {
		return game.StateResponse{}, err
	}

	if eng.Phase() == game.Ended {
		if err := g.finishGame(ctx, rec, eng); err != nil {
			return game.StateResponse{}, err
		}
	}

	return game.StateResponse{State: eng.Snapshot(), SGF: sgfText}, nil
}

func (g *GameUseCase) State(ctx context.Context, gameKeySecret string) (game.StateResponse, error) {
	rec, err := g.store.GetGameBySecretKey(ctx, gameKeySecret)
	if err != nil {
		return game.StateResponse{}, err
	}
	eng, err := g.engineFor(rec)
	if err != nil {
		return game.StateResponse{}, err
	}
	sgfText, err := g.store.LoadSGFFromRedis(gameKeySecret)
	if err != nil {
		return game.StateResponse{}, err
	}
	return game.StateResponse{State: eng.Snapshot(), SGF: sgfText}, nil
}

func (g *GameUseCase) appendToSgf(rec game.Record, userID string, appendFn func(sgfText, colorLetter string) string) (string, error) {
	letter := "W"
	if userID == rec.PlayerBlack {
		letter = "B"
	}

	sgfText, err := g.store.LoadSGFFromRedis(rec.GameKeySecret)
	if err != nil {
		return "", err
	}
	sgfText = appendFn(sgfText, letter)
	if err := g.store.SaveSGFToRedis(rec.GameKeySecret, sgfText); err != nil {
		return "", err
	}
	return sgfText, nil
}

func (g *GameUseCase) finishGame(ctx context.Context, rec game.Record, eng *game.Game) error {
	rec.CapturedWhite = eng.CapturedWhite()
	rec.CapturedBlack = eng.CapturedBlack()
	rec.BlackScore, rec.WhiteScore = eng.Scores()

	if err := g.store.SaveResult(ctx, rec); err != nil {
		return err
	}

	g.mu.Lock()
	delete(g.active, rec.GameKeySecret)
	g.mu.Unlock()

	g.log.Infof("game %d ended: black %d, white %d", rec.GameID, rec.BlackScore, rec.WhiteScore)
	return nil
}

func (g *GameUseCase) IsUserInGame(rec game.Record, userID string) bool {
	return rec.PlayerWhite == userID || rec.PlayerBlack == userID
}
