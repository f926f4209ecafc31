package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/database"
)

type summaryRepository struct {
	coll *mongo.Collection
}

// NewSummaryRepository creates a call summary repository backed by MongoDB
func NewSummaryRepository(db *mongo.Database) repositories.SummaryRepository {
	return &summaryRepository{coll: db.Collection(database.CollectionSummaries)}
}

// Save replaces any earlier summary of the same appointment
func (r *summaryRepository) Save(ctx context.Context, summary *entities.CallSummary) error {
	now := time.Now().UTC()
	doc := summaryDoc{
		AppointmentID:     summary.AppointmentID,
		KeyPoints:         summary.KeyPoints,
		SymptomsDiscussed: summary.SymptomsDiscussed,
		ActionItems:       summary.ActionItems,
		OverallSummary:    summary.OverallSummary,
		TranscriptObject:  summary.TranscriptObject,
		ModelUsed:         summary.ModelUsed,
		CreatedAt:         now,
	}

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var saved summaryDoc
	err := r.coll.FindOneAndReplace(ctx, bson.M{"appointment_id": summary.AppointmentID}, doc, opts).Decode(&saved)
	if err != nil {
		return err
	}
	if saved.ID != primitive.NilObjectID {
		summary.ID = saved.ID.Hex()
	}
	summary.CreatedAt = now
	return nil
}

func (r *summaryRepository) FindByAppointmentID(ctx context.Context, appointmentID string) (*entities.CallSummary, error) {
	var doc summaryDoc
	if err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}
