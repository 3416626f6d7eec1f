package repo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/julienbrg/game-of-go/internal/adapters"
	"github.com/julienbrg/game-of-go/internal/domain/user"
	errs "github.com/julienbrg/game-of-go/internal/errors"
	"github.com/julienbrg/game-of-go/internal/random"
)

type MongoUserStorage struct {
	adapter *adapters.AdapterMongo
}

func NewMongoUserStorage(adapter *adapters.AdapterMongo) *MongoUserStorage {
	return &MongoUserStorage{adapter: adapter}
}

func (m MongoUserStorage) CheckExists(username string) bool {
	_, ok := m.GetUser(username)
	return ok
}

func (m MongoUserStorage) GetUser(username string) (user.User, bool) {
	collection := m.adapter.Database.Collection("users")
	filter := bson.D{{Key: "username", Value: username}}

	var result user.User
	err := collection.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return user.User{}, false
	}
	return result, true
}

func (m MongoUserStorage) GetUserByID(id string) (user.User, bool) {
	collection := m.adapter.Database.Collection("users")
	filter := bson.D{{Key: "_id", Value: id}}

	var result user.User
	err := collection.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			slog.Error(err.Error())
		}
		return user.User{}, false
	}
	return result, true
}

func (m MongoUserStorage) CreateUser(username, email, password string) (user.User, error) {
	if m.CheckExists(username) {
		return user.User{}, errs.ErrUserExists
	}

	salt := random.RandString(16)
	newUser := user.User{
		ID:           random.RandString(24),
		Username:     username,
		Email:        email,
		CreatedAt:    time.Now(),
		PasswordHash: user.HashPassword(password, salt),
		PasswordSalt: salt,
	}

	collection := m.adapter.Database.Collection("users")
	if _, err := collection.InsertOne(context.TODO(), newUser); err != nil {
		slog.Error(err.Error())
		return user.User{}, errs.ErrInternal
	}

	return newUser, nil
}
