// Package mongodb stores the assistant records in MongoDB collections.
package mongodb

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/repositories"
)

type appointmentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	PatientID       string             `bson:"patient_id"`
	DoctorID        string             `bson:"doctor_id"`
	AppointmentTime time.Time          `bson:"appointment_time"`
	Reason          string             `bson:"reason,omitempty"`
	Status          string             `bson:"status"`
	Type            string             `bson:"type"`
	ChannelID       string             `bson:"channel_id"`
	RTCRoomSID      *string            `bson:"rtc_room_sid,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d *appointmentDoc) toEntity() *entities.Appointment {
	return &entities.Appointment{
		ID:              d.ID.Hex(),
		PatientID:       d.PatientID,
		DoctorID:        d.DoctorID,
		AppointmentTime: d.AppointmentTime,
		Reason:          d.Reason,
		Status:          entities.AppointmentStatus(d.Status),
		Type:            entities.AppointmentType(d.Type),
		ChannelID:       d.ChannelID,
		RTCRoomSID:      d.RTCRoomSID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type symptomDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PatientID  string             `bson:"patient_id"`
	Symptom    string             `bson:"symptom"`
	Severity   string             `bson:"severity"`
	Transcript string             `bson:"transcript,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *symptomDoc) toEntity() *entities.SymptomReport {
	return &entities.SymptomReport{
		ID:         d.ID.Hex(),
		PatientID:  d.PatientID,
		Symptom:    d.Symptom,
		Severity:   entities.Severity(d.Severity),
		Transcript: d.Transcript,
		CreatedAt:  d.CreatedAt,
	}
}

type alertDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PatientID  string             `bson:"patient_id"`
	Reason     string             `bson:"reason"`
	Status     string             `bson:"status"`
	Source     string             `bson:"source"`
	Location   *string            `bson:"location,omitempty"`
	ResolvedBy *string            `bson:"resolved_by,omitempty"`
	ResolvedAt *time.Time         `bson:"resolved_at,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d *alertDoc) toEntity() *entities.EmergencyAlert {
	return &entities.EmergencyAlert{
		ID:         d.ID.Hex(),
		PatientID:  d.PatientID,
		Reason:     d.Reason,
		Status:     entities.AlertStatus(d.Status),
		Source:     entities.AlertSource(d.Source),
		Location:   d.Location,
		ResolvedBy: d.ResolvedBy,
		ResolvedAt: d.ResolvedAt,
		CreatedAt:  d.CreatedAt,
	}
}

type summaryDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	AppointmentID     string             `bson:"appointment_id"`
	KeyPoints         []string           `bson:"key_points"`
	SymptomsDiscussed []string           `bson:"symptoms_discussed"`
	ActionItems       []string           `bson:"action_items"`
	OverallSummary    string             `bson:"overall_summary"`
	TranscriptObject  string             `bson:"transcript_object,omitempty"`
	ModelUsed         string             `bson:"model_used,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
}

func (d *summaryDoc) toEntity() *entities.CallSummary {
	return &entities.CallSummary{
		ID:                d.ID.Hex(),
		AppointmentID:     d.AppointmentID,
		KeyPoints:         d.KeyPoints,
		SymptomsDiscussed: d.SymptomsDiscussed,
		ActionItems:       d.ActionItems,
		OverallSummary:    d.OverallSummary,
		TranscriptObject:  d.TranscriptObject,
		ModelUsed:         d.ModelUsed,
		CreatedAt:         d.CreatedAt,
	}
}

// objectID parses a hex id; malformed ids cannot match any document
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repositories.ErrRecordNotFound
	}
	return oid, nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrRecordNotFound
	}
	return err
}
