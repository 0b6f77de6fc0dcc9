package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

const prefsCollection = "user_preferences"

type MongoPreferencesRepository struct {
	coll *mongo.Collection
}

func NewPreferencesRepository(db *mongo.Database) *MongoPreferencesRepository {
	return &MongoPreferencesRepository{coll: db.Collection(prefsCollection)}
}

type mongoPrefs struct {
	Username         string `bson:"_id"`
	Palette          string `bson:"palette"`
	DefaultPage      string `bson:"default_page"`
	SidebarCollapsed bool   `bson:"sidebar_collapsed"`
	UpdatedAt        int64  `bson:"updated_at"`
}

func (r *MongoPreferencesRepository) Find(ctx context.Context, username string) (*domain.Preferences, error) {
	var mp mongoPrefs
	if err := r.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("find preferences: %w", err)
	}

	return &domain.Preferences{
		Username:         mp.Username,
		Palette:          mp.Palette,
		DefaultPage:      mp.DefaultPage,
		SidebarCollapsed: mp.SidebarCollapsed,
		UpdatedAt:        unixToTime(mp.UpdatedAt),
	}, nil
}

func (r *MongoPreferencesRepository) Upsert(ctx context.Context, prefs *domain.Preferences) error {
	doc := mongoPrefs{
		Username:         prefs.Username,
		Palette:          prefs.Palette,
		DefaultPage:      prefs.DefaultPage,
		SidebarCollapsed: prefs.SidebarCollapsed,
		UpdatedAt:        prefs.UpdatedAt.Unix(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": prefs.Username}, doc, opts); err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
