package appointmentRepo

import (
	"context"
	"errors"
	"fmt"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// InsertIfFree re-checks the requested interval against the current ledger
// and inserts the appointment inside a single mongo transaction. Running the
// check and the insert in one transaction keeps the ledger consistent even
// across service instances; the per-professional lock above narrows the
// window, this closes it.
func (repo *MongoAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := activeOverlapFilter(appt.ProfessionalID, appt.Start, appt.End)
		err := repo.coll.FindOne(sc, filter).Err()
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}

		if _, err := repo.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrOverlap) {
			return ErrOverlap
		}
		return fmt.Errorf("appointment transaction failed: %w", err)
	}

	return nil
}
