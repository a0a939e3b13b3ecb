package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	filter := bson.M{"id": appointmentID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", appointmentID, err)
	}
	return &appt, nil
}

func (repo *MongoAppointmentRepo) ListActiveInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := activeOverlapFilter(professionalID, from, to)
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching active appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) ListByProfessional(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"start":           bson.M{"$lt": to},
		"end":             bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoAppointmentRepo) CountActiveInRange(ctx context.Context, professionalID string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professional_id": professionalID,
		"status":          bson.M{"$ne": models.AppointmentCancelled},
		"start":           bson.M{"$gte": from, "$lt": to},
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting active appointments: %w", err)
	}
	return count, nil
}

func (repo *MongoAppointmentRepo) Cancel(ctx context.Context, appointmentID, actorID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID, "status": bson.M{"$ne": models.AppointmentCancelled}}
	update := bson.M{"$set": bson.M{
		"status":       models.AppointmentCancelled,
		"cancelled_at": at,
		"cancelled_by": actorID,
	}}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", appointmentID, err)
	}
	return nil
}

func (repo *MongoAppointmentRepo) SetStatus(ctx context.Context, appointmentID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": appointmentID}, update)
	if err != nil {
		return fmt.Errorf("failed to set status for appointment %s: %w", appointmentID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found for status update", appointmentID)
	}
	return nil
}

// activeOverlapFilter matches non-cancelled appointments overlapping the
// half-open interval [from, to).
func activeOverlapFilter(professionalID string, from, to time.Time) bson.M {
	return bson.M{
		"professional_id": professionalID,
		"status":          bson.M{"$ne": models.AppointmentCancelled},
		"start":           bson.M{"$lt": to},
		"end":             bson.M{"$gt": from},
	}
}
