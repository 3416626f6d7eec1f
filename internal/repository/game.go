package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/julienbrg/game-of-go/internal/bootstrap"
	"github.com/julienbrg/game-of-go/internal/domain/game"
	errs "github.com/julienbrg/game-of-go/internal/errors"
	"github.com/julienbrg/game-of-go/internal/statuses"
)

const gameIDCounterKey = "game:id_counter"

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

// GenerateGameKeys returns a uuid secret key plus a short public code
// derived from it. The public code is regenerated until unique.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		if g.CheckPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	collection := g.mongo.Collection("games")
	filter := bson.M{
		"game_key_public": gameKeyPublic,
	}
	err := collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true
	}
	return false
}

// NextGameID hands out incrementing numeric game IDs. Redis INCR keeps the
// counter atomic across instances; only game creation goes through it.
func (g *GameRepository) NextGameID(ctx context.Context) (int64, error) {
	id, err := g.redis.Incr(ctx, gameIDCounterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment game id counter: %w", err)
	}
	return id, nil
}

func (g *GameRepository) PutGame(ctx context.Context, rec game.Record) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")

	_, err := collection.InsertOne(ctx, rec)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return false
	}

	g.log.Infof("game inserted successfully with key: %s", rec.GameKeySecret)

	return true
}

func (g *GameRepository) GetGameBySecretKey(ctx context.Context, gameKeySecret string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKeySecret}

	var rec game.Record
	err := collection.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, errs.ErrGameNotFound
	}
	if err != nil {
		return game.Record{}, err
	}
	return rec, nil
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{
		"$and": []bson.M{
			{"game_key_public": gameKeyPublic},
			{"status": bson.M{"$ne": statuses.StatusEnded}},
		},
	}

	var rec game.Record
	err := collection.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, errs.ErrGameNotFound
	}
	if err != nil {
		return game.Record{}, err
	}
	return rec, nil
}

// SetPlayer fills the free seat of a waiting game and marks it started.
func (g *GameRepository) SetPlayer(ctx context.Context, gameKeySecret string, userID string, color game.Color) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": gameKeySecret}

	field := "player_white"
	if color == game.Black {
		field = "player_black"
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			field:        userID,
			"status":     statuses.StatusInProgress,
			"started_at": now,
		},
	}

	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return game.Record{}, err
	}
	if res.MatchedCount == 0 {
		g.log.Infof("игра с ключом %s не найдена", gameKeySecret)
		return game.Record{}, errs.ErrGameNotFound
	}

	var updated game.Record
	if err := collection.FindOne(ctx, filter).Decode(&updated); err != nil {
		g.log.Errorf("ошибка при получении обновлённой игры: %v", err)
		return game.Record{}, err
	}

	g.log.Infof("Пользователь %s (%s) добавлен к игре %s", userID, color, gameKeySecret)

	return updated, nil
}

// SaveResult writes the final counters and scores after a double pass.
func (g *GameRepository) SaveResult(ctx context.Context, rec game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection("games")
	filter := bson.M{"game_key_secret": rec.GameKeySecret}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":         statuses.StatusEnded,
			"ended_at":       now,
			"captured_white": rec.CapturedWhite,
			"captured_black": rec.CapturedBlack,
			"black_score":    rec.BlackScore,
			"white_score":    rec.WhiteScore,
		},
	}

	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrGameNotFound
	}
	return nil
}

func (g *GameRepository) SaveSGFToRedis(key string, sgfText string) error {
	return g.redis.Set(context.Background(), "sgf:"+key, sgfText, 0).Err()
}

func (g *GameRepository) LoadSGFFromRedis(key string) (string, error) {
	val, err := g.redis.Get(context.Background(), "sgf:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errs.ErrGameNotFound
	}
	return val, err
}
