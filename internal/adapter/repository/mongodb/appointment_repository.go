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

type appointmentRepository struct {
	coll *mongo.Collection
}

// NewAppointmentRepository creates an appointment repository backed by MongoDB
func NewAppointmentRepository(db *mongo.Database) repositories.AppointmentRepository {
	return &appointmentRepository{coll: db.Collection(database.CollectionAppointments)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	now := time.Now().UTC()
	doc := appointmentDoc{
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentTime: appointment.AppointmentTime,
		Reason:          appointment.Reason,
		Status:          string(appointment.Status),
		Type:            string(appointment.Type),
		ChannelID:       appointment.ChannelID,
		RTCRoomSID:      appointment.RTCRoomSID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	appointment.ID = res.InsertedID.(primitive.ObjectID).Hex()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entities.Appointment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *appointmentRepository) FindByChannelID(ctx context.Context, channelID string) (*entities.Appointment, error) {
	return r.findOne(ctx, bson.M{"channel_id": channelID})
}

func (r *appointmentRepository) findOne(ctx context.Context, filter bson.M) (*entities.Appointment, error) {
	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toEntity(), nil
}

func (r *appointmentRepository) List(ctx context.Context, filters repositories.AppointmentFilters) ([]*entities.Appointment, error) {
	filter := bson.M{}
	if filters.PatientID != "" {
		filter["patient_id"] = filters.PatientID
	}
	if filters.DoctorID != "" {
		filter["doctor_id"] = filters.DoctorID
	}
	if len(filters.Statuses) > 0 {
		statuses := make([]string, 0, len(filters.Statuses))
		for _, s := range filters.Statuses {
			statuses = append(statuses, string(s))
		}
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "appointment_time", Value: 1}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []appointmentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	appointments := make([]*entities.Appointment, 0, len(docs))
	for i := range docs {
		appointments = append(appointments, docs[i].toEntity())
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	return r.update(ctx, id, bson.M{"status": string(status)})
}

func (r *appointmentRepository) SetRoomSID(ctx context.Context, id string, sid *string) error {
	return r.update(ctx, id, bson.M{"rtc_room_sid": sid})
}

func (r *appointmentRepository) update(ctx context.Context, id string, set bson.M) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	set["updated_at"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}
