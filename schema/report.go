package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportCollection = "reports"

	// SymptomPreviewLength is the number of characters of a symptom shown in report lists.
	SymptomPreviewLength = 15
)

// Report is a patient report submitted by field staff.
type Report struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	PatientLocation string             `json:"patientLocation" bson:"patientLocation"`
	Symptom         string             `json:"symptom" bson:"symptom"`
	IsSevere        bool               `json:"isSevere" bson:"isSevere"`
	Destination     string             `json:"destination,omitempty" bson:"destination,omitempty"`
	EstimatedTime   *int               `json:"estimatedTime,omitempty" bson:"estimatedTime,omitempty"`
	IsCreated       time.Time          `json:"isCreated" bson:"isCreated"`
}

// ReportSummary is the list view of a report.
type ReportSummary struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	PatientLocation string             `json:"patientLocation" bson:"patientLocation"`
	Symptom         string             `json:"symptom" bson:"symptom"`
	IsCreated       time.Time          `json:"isCreated" bson:"isCreated"`
}

// PreviewSymptom truncates a symptom for list views.
func PreviewSymptom(symptom string) string {
	r := []rune(symptom)
	if len(r) > SymptomPreviewLength {
		return string(r[:SymptomPreviewLength])
	}
	return symptom
}

// ReportCriteria selects a report by its submitted content, the way the
// severity update identifies the report it refers to.
type ReportCriteria struct {
	User            primitive.ObjectID
	PatientLocation string
	Symptom         string
}

// ReportPatch is an explicit edit of a report. Nil fields are left unchanged.
type ReportPatch struct {
	PatientLocation *string `json:"patientLocation"`
	Symptom         *string `json:"symptom"`
	IsSevere        *bool   `json:"isSevere"`
	Destination     *string `json:"destination"`
}

// Empty reports whether the patch changes nothing.
func (p ReportPatch) Empty() bool {
	return p.PatientLocation == nil && p.Symptom == nil && p.IsSevere == nil && p.Destination == nil
}
