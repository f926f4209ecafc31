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

type symptomRepository struct {
	coll *mongo.Collection
}

// NewSymptomRepository creates a symptom report repository backed by MongoDB
func NewSymptomRepository(db *mongo.Database) repositories.SymptomRepository {
	return &symptomRepository{coll: db.Collection(database.CollectionSymptoms)}
}

func (r *symptomRepository) Create(ctx context.Context, report *entities.SymptomReport) error {
	now := time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, symptomDoc{
		PatientID:  report.PatientID,
		Symptom:    report.Symptom,
		Severity:   string(report.Severity),
		Transcript: report.Transcript,
		CreatedAt:  now,
	})
	if err != nil {
		return err
	}
	report.ID = res.InsertedID.(primitive.ObjectID).Hex()
	report.CreatedAt = now
	return nil
}

func (r *symptomRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*entities.SymptomReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []symptomDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	reports := make([]*entities.SymptomReport, 0, len(docs))
	for i := range docs {
		reports = append(reports, docs[i].toEntity())
	}
	return reports, nil
}
