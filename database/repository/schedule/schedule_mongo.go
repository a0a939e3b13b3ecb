package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoScheduleRepo) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.CreatedAt = time.Now().UTC()
	if _, err := repo.scheduleColl.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

func (repo *MongoScheduleRepo) UpdateSchedule(ctx context.Context, s *models.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.UpdatedAt = time.Now().UTC()
	filter := bson.M{"id": s.ID, "professional_id": s.ProfessionalID}
	res, err := repo.scheduleColl.ReplaceOne(ctx, filter, s)
	if err != nil {
		return fmt.Errorf("failed to update schedule %s: %w", s.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("schedule %s not found for update", s.ID)
	}
	return nil
}

func (repo *MongoScheduleRepo) DeleteSchedule(ctx context.Context, professionalID, scheduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": scheduleID, "professional_id": professionalID}
	if _, err := repo.scheduleColl.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete schedule %s: %w", scheduleID, err)
	}
	return nil
}

func (repo *MongoScheduleRepo) ListSchedules(ctx context.Context, professionalID string) ([]models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": professionalID}
	opts := options.Find().SetSort(bson.D{{Key: "weekday", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := repo.scheduleColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("error decoding schedules: %w", err)
	}
	return schedules, nil
}

func (repo *MongoScheduleRepo) ListSchedulesForWeekday(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": professionalID, "weekday": int(weekday)}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.scheduleColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedules for weekday %d: %w", weekday, err)
	}
	defer cursor.Close(ctx)

	var schedules []models.Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("error decoding schedules: %w", err)
	}
	return schedules, nil
}

func (repo *MongoScheduleRepo) CreateBreak(ctx context.Context, b *models.Break) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b.CreatedAt = time.Now().UTC()
	if _, err := repo.breakColl.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert break: %w", err)
	}
	return nil
}

func (repo *MongoScheduleRepo) DeleteBreak(ctx context.Context, professionalID, breakID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": breakID, "professional_id": professionalID}
	if _, err := repo.breakColl.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete break %s: %w", breakID, err)
	}
	return nil
}

func (repo *MongoScheduleRepo) ListBreaks(ctx context.Context, professionalID string) ([]models.Break, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": professionalID}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.breakColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching breaks: %w", err)
	}
	defer cursor.Close(ctx)

	var breaks []models.Break
	if err := cursor.All(ctx, &breaks); err != nil {
		return nil, fmt.Errorf("error decoding breaks: %w", err)
	}
	return breaks, nil
}

func (repo *MongoScheduleRepo) ListBreaksInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Break, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Half-open overlap: break.start < to && break.end > from.
	filter := bson.M{
		"professional_id": professionalID,
		"start":           bson.M{"$lt": to},
		"end":             bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.breakColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching breaks in range: %w", err)
	}
	defer cursor.Close(ctx)

	var breaks []models.Break
	if err := cursor.All(ctx, &breaks); err != nil {
		return nil, fmt.Errorf("error decoding breaks: %w", err)
	}
	return breaks, nil
}
