package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (repo *mongoProfessionalRepo) GetByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	filter := bson.M{"id": professionalID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching professional with id %s: %w", professionalID, err)
	}
	return &p, nil
}

func (repo *mongoProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.CreatedAt = time.Now().UTC()
	if _, err := repo.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert professional: %w", err)
	}
	return nil
}

func (repo *mongoProfessionalRepo) Update(ctx context.Context, p *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.UpdatedAt = time.Now().UTC()
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update professional %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("professional %s not found for update", p.ID)
	}
	return nil
}

func (repo *mongoProfessionalRepo) UpdateSubscription(ctx context.Context, professionalID, planTier, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"plan_tier":           planTier,
		"subscription_status": status,
		"updated_at":          time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": professionalID}, update)
	if err != nil {
		return fmt.Errorf("failed to update subscription for professional %s: %w", professionalID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("professional %s not found for subscription update", professionalID)
	}
	return nil
}
