package database

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureStateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(stateCollection).Indexes()

	updatedAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("updatedAt_index"),
	}

	logger := log.WithField("component", "DB")
	logger.Info("EnsureStateIndexes: creating updatedAt_index index")
	if _, err := indexes.CreateOne(ctx, updatedAtIndex); err != nil {
		logger.WithError(err).Error("EnsureStateIndexes: updatedAt index error")
		return err
	}
	logger.Info("EnsureStateIndexes: updatedAt_index index created")
	return nil
}
