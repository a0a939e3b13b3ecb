package professionalRepo

import (
	"context"

	"clinicbook/database"
	"clinicbook/models"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProfessionalRepository provides access to professional accounts, including
// their embedded services, team members and billing-owned plan fields.
// Lookups return (nil, nil) when no document matches.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, professionalID string) (*models.Professional, error)
	Create(ctx context.Context, p *models.Professional) error
	Update(ctx context.Context, p *models.Professional) error
	// UpdateSubscription applies the plan state pushed by the billing
	// collaborator; the engine never derives these fields itself.
	UpdateSubscription(ctx context.Context, professionalID, planTier, status string) error
}

type mongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new MongoDB ProfessionalRepository.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.MongoClient.Database("clinicbook")
	repo := &mongoProfessionalRepo{
		coll: db.Collection("professionals"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure professional indexes", zap.Error(err))
	}
	return repo
}
