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

type alertRepository struct {
	coll *mongo.Collection
}

// NewAlertRepository creates an emergency alert repository backed by MongoDB
func NewAlertRepository(db *mongo.Database) repositories.AlertRepository {
	return &alertRepository{coll: db.Collection(database.CollectionAlerts)}
}

func (r *alertRepository) Create(ctx context.Context, alert *entities.EmergencyAlert) error {
	now := time.Now().UTC()
	doc := alertDoc{
		PatientID: alert.PatientID,
		Reason:    alert.Reason,
		Status:    string(alert.Status),
		Source:    string(alert.Source),
		Location:  alert.Location,
		CreatedAt: now,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	alert.ID = res.InsertedID.(primitive.ObjectID).Hex()
	alert.CreatedAt = now
	return nil
}

func (r *alertRepository) FindByID(ctx context.Context, id string) (*entities.EmergencyAlert, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc alertDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *alertRepository) ListByStatus(ctx context.Context, status entities.AlertStatus, limit int) ([]*entities.EmergencyAlert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{"status": string(status)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []alertDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	alerts := make([]*entities.EmergencyAlert, 0, len(docs))
	for i := range docs {
		alerts = append(alerts, docs[i].toEntity())
	}
	return alerts, nil
}

func (r *alertRepository) Resolve(ctx context.Context, alert *entities.EmergencyAlert) error {
	oid, err := objectID(alert.ID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(entities.AlertStatusActive)},
		bson.M{"$set": bson.M{
			"status":      string(alert.Status),
			"resolved_by": alert.ResolvedBy,
			"resolved_at": alert.ResolvedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}
