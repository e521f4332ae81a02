package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medi-route/triage-api/schema"
)

var (
	ErrReportNotFound = fmt.Errorf("report not found")
	ErrEmptyPatch     = fmt.Errorf("nothing to update")
)

type Report interface {
	CreateReport(ctx context.Context, userID primitive.ObjectID, patientLocation, symptom string) (*schema.Report, error)
	ListReports(ctx context.Context, userID primitive.ObjectID) ([]schema.ReportSummary, error)
	GetReport(ctx context.Context, id primitive.ObjectID) (*schema.Report, error)

	UpdateSeverity(ctx context.Context, criteria schema.ReportCriteria, isSevere bool) (*schema.Report, error)
	UpdateSeverityByID(ctx context.Context, id, userID primitive.ObjectID, isSevere bool) (*schema.Report, error)
	UpdateDestination(ctx context.Context, id, userID primitive.ObjectID, destination string) error
	UpdateEstimatedTime(ctx context.Context, id primitive.ObjectID, minutes int) error
	UpdateReport(ctx context.Context, id, userID primitive.ObjectID, patch schema.ReportPatch) (*schema.Report, error)
}

// CreateReport inserts a report of a user and appends it to the user's reports
func (m *mongoDB) CreateReport(ctx context.Context, userID primitive.ObjectID, patientLocation, symptom string) (*schema.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	exists, err := m.userExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	report := schema.Report{
		ID:              primitive.NewObjectID(),
		User:            userID,
		PatientLocation: patientLocation,
		Symptom:         symptom,
		IsCreated:       time.Now().UTC().Truncate(time.Millisecond),
	}

	db := m.client.Database(m.database)
	if _, err := db.Collection(schema.ReportCollection).InsertOne(ctx, report); err != nil {
		return nil, err
	}

	if _, err := db.Collection(schema.UserCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"reports": report.ID}},
	); err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"report": report.ID.Hex(),
		}).WithError(err).Error("append report to user")
		return nil, err
	}

	return &report, nil
}

// ListReports returns the reports of a user, newest first, with symptoms
// truncated for display
func (m *mongoDB) ListReports(ctx context.Context, userID primitive.ObjectID) ([]schema.ReportSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	exists, err := m.userExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	cursor, err := c.Find(ctx, bson.M{"user": userID}, options.Find().
		SetSort(bson.D{{Key: "isCreated", Value: -1}}).
		SetProjection(bson.M{
			"patientLocation": 1,
			"symptom":         1,
			"isCreated":       1,
		}))
	if err != nil {
		return nil, err
	}

	summaries := make([]schema.ReportSummary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}

	for i := range summaries {
		summaries[i].Symptom = schema.PreviewSymptom(summaries[i].Symptom)
	}

	return summaries, nil
}

// GetReport returns a report by its id
func (m *mongoDB) GetReport(ctx context.Context, id primitive.ObjectID) (*schema.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ReportCollection)

	var report schema.Report
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// UpdateSeverity sets the severity flag of the most recent report matching
// the criteria in a single atomic operation. It never inserts.
func (m *mongoDB) UpdateSeverity(ctx context.Context, criteria schema.ReportCriteria, isSevere bool) (*schema.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	query := bson.M{
		"user":            criteria.User,
		"patientLocation": criteria.PatientLocation,
		"symptom":         criteria.Symptom,
	}
	update := bson.M{"$set": bson.M{"isSevere": isSevere}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "isCreated", Value: -1}}).
		SetReturnDocument(options.After)

	var report schema.Report
	if err := c.FindOneAndUpdate(ctx, query, update, opts).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// UpdateSeverityByID sets the severity flag of a report of a user
func (m *mongoDB) UpdateSeverityByID(ctx context.Context, id, userID primitive.ObjectID, isSevere bool) (*schema.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ReportCollection)

	var report schema.Report
	if err := c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": bson.M{"isSevere": isSevere}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// UpdateDestination records the facility chosen for a report of a user
func (m *mongoDB) UpdateDestination(ctx context.Context, id, userID primitive.ObjectID, destination string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	result, err := c.UpdateOne(ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": bson.M{"destination": destination}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrReportNotFound
	}

	return nil
}

// UpdateEstimatedTime records the predicted travel time of a report
func (m *mongoDB) UpdateEstimatedTime(ctx context.Context, id primitive.ObjectID, minutes int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ReportCollection)
	result, err := c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"estimatedTime": minutes}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrReportNotFound
	}

	return nil
}

// UpdateReport applies an explicit edit to a report of a user and returns
// the updated report
func (m *mongoDB) UpdateReport(ctx context.Context, id, userID primitive.ObjectID, patch schema.ReportPatch) (*schema.Report, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if patch.PatientLocation != nil {
		set["patientLocation"] = *patch.PatientLocation
	}
	if patch.Symptom != nil {
		set["symptom"] = *patch.Symptom
	}
	if patch.IsSevere != nil {
		set["isSevere"] = *patch.IsSevere
	}
	if patch.Destination != nil {
		set["destination"] = *patch.Destination
	}

	c := m.client.Database(m.database).Collection(schema.ReportCollection)

	var report schema.Report
	if err := c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}
