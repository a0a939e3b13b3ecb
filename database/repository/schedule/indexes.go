package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the schedules and breaks collections.
func (repo *MongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scheduleIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: all windows for a professional on a weekday.
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "weekday", Value: 1}},
			Options: options.Index().SetName("professional_weekday_idx"),
		},
	}
	if _, err := repo.scheduleColl.Indexes().CreateMany(ctx, scheduleIndexes); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}

	breakIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "start", Value: 1}, {Key: "end", Value: 1}},
			Options: options.Index().SetName("professional_range_idx"),
		},
	}
	if _, err := repo.breakColl.Indexes().CreateMany(ctx, breakIndexes); err != nil {
		return fmt.Errorf("failed to create break indexes: %w", err)
	}
	return nil
}
