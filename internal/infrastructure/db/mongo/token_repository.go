package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/softtronics/msw-portal/internal/core/domain"
	"github.com/softtronics/msw-portal/internal/core/ports"
)

const tokenCollection = "refresh_tokens"

type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokenCollection)}
}

type mongoToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	TokenHash string             `bson:"token_hash"`
	ExpiresAt int64              `bson:"expires_at"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *TokenRepository) Insert(ctx context.Context, record *domain.RefreshTokenRecord) error {
	doc := mongoToken{
		UserID:    record.UserID,
		TokenHash: record.TokenHash,
		ExpiresAt: record.ExpiresAt.Unix(),
		CreatedAt: record.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// FindLatestByUser returns the most recently created record for the user.
// The secondary _id sort breaks ties between records created in the same second.
func (r *TokenRepository) FindLatestByUser(ctx context.Context, userID string) (*domain.RefreshTokenRecord, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	var mt mongoToken
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}

	return &domain.RefreshTokenRecord{
		ID:        mt.ID.Hex(),
		UserID:    mt.UserID,
		TokenHash: mt.TokenHash,
		ExpiresAt: unixToTime(mt.ExpiresAt),
		CreatedAt: unixToTime(mt.CreatedAt),
	}, nil
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID string, scope ports.DeleteScope) error {
	filter := bson.M{"user_id": userID}
	now := time.Now().UTC().Unix()

	switch scope {
	case ports.DeleteExpired:
		filter["expires_at"] = bson.M{"$lte": now}
	case ports.DeleteActive:
		filter["expires_at"] = bson.M{"$gt": now}
	}

	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}
	return nil
}
