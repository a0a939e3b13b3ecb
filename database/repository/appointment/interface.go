package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"clinicbook/database"
	"clinicbook/models"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrOverlap is returned by InsertIfFree when a non-cancelled appointment
// already occupies part of the requested interval.
var ErrOverlap = errors.New("overlapping appointment exists")

// AppointmentRepository is the ledger of occupied time. Appointments are
// never removed; cancellation is a status flip so the history survives.
type AppointmentRepository interface {
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// ListActiveInRange returns non-cancelled appointments overlapping [from, to).
	ListActiveInRange(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error)
	// ListByProfessional returns all appointments (any status) overlapping [from, to).
	ListByProfessional(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error)
	// CountActiveInRange counts non-cancelled appointments starting in [from, to).
	CountActiveInRange(ctx context.Context, professionalID string, from, to time.Time) (int64, error)
	// InsertIfFree atomically re-checks the interval against the current
	// ledger and inserts the appointment; ErrOverlap when the slot is taken.
	InsertIfFree(ctx context.Context, appt *models.Appointment) error
	Cancel(ctx context.Context, appointmentID, actorID string, at time.Time) error
	SetStatus(ctx context.Context, appointmentID, status string) error
}

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database("clinicbook")
	repo := &MongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure appointment indexes", zap.Error(err))
	}
	return repo
}
