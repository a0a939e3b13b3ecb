package scheduleRepo

import (
	"context"
	"time"

	"clinicbook/database"
	"clinicbook/models"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ScheduleRepository stores recurring weekly windows and one-off breaks.
// Both are professional-authored; the availability engine only reads them.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, s *models.Schedule) error
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, professionalID, scheduleID string) error
	ListSchedules(ctx context.Context, professionalID string) ([]models.Schedule, error)
	ListSchedulesForWeekday(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.Schedule, error)

	CreateBreak(ctx context.Context, b *models.Break) error
	DeleteBreak(ctx context.Context, professionalID, breakID string) error
	ListBreaks(ctx context.Context, professionalID string) ([]models.Break, error)
	// ListBreaksInRange returns breaks overlapping [from, to).
	ListBreaksInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Break, error)
}

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	scheduleColl *mongo.Collection
	breakColl    *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("clinicbook")
	repo := &MongoScheduleRepo{
		scheduleColl: db.Collection("schedules"),
		breakColl:    db.Collection("breaks"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure schedule indexes", zap.Error(err))
	}
	return repo
}
