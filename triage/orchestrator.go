// Package triage drives a patient report through severity
// classification, facility search and route estimation.
package triage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medi-route/triage-api/consts"
	"github.com/medi-route/triage-api/facility"
	"github.com/medi-route/triage-api/route"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/store"
)

const (
	logPrefix      = "triage"
	defaultTimeout = 30 * time.Second
)

var (
	ErrEmptyPatientLocation = errors.New("empty patient location")
	ErrEmptySymptom         = errors.New("empty symptom")
	ErrEmptyDestination     = errors.New("empty destination")
)

// ReportStore is the part of the store the pipeline writes to
type ReportStore interface {
	CreateReport(ctx context.Context, userID primitive.ObjectID, patientLocation, symptom string) (*schema.Report, error)
	GetReport(ctx context.Context, id primitive.ObjectID) (*schema.Report, error)
	UpdateSeverityByID(ctx context.Context, id, userID primitive.ObjectID, isSevere bool) (*schema.Report, error)
	UpdateDestination(ctx context.Context, id, userID primitive.ObjectID, destination string) error
	UpdateEstimatedTime(ctx context.Context, id primitive.ObjectID, minutes int) error
}

// Classifier decides whether symptoms need emergency care
type Classifier interface {
	PredictSeverity(ctx context.Context, symptoms string) (schema.Severity, error)
}

// Recommender suggests a medical department for symptoms
type Recommender interface {
	PredictDepartment(ctx context.Context, symptoms string) (string, error)
}

// FacilityLocator finds facilities of a category around an address
type FacilityLocator interface {
	Geocode(ctx context.Context, address string) (schema.Location, error)
	Locate(ctx context.Context, category, address string) (*facility.Result, error)
}

// RouteEstimator estimates the drive to a facility
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to schema.Location) (route.Estimate, error)
}

// Request to triage a patient. Without a ReportID a new report is created
// from PatientLocation and Symptom.
type Request struct {
	Owner           primitive.ObjectID
	ReportID        *primitive.ObjectID
	PatientLocation string
	Symptom         string
}

// Result of classification and facility search. The report waits in
// StateLocatingFacility until a facility is selected.
type Result struct {
	ReportID   primitive.ObjectID `json:"reportId"`
	State      State              `json:"state"`
	Severe     bool               `json:"isSevere"`
	Department string             `json:"department,omitempty"`
	Category   string             `json:"category"`
	Origin     schema.Location    `json:"origin"`
	Facilities []schema.Facility  `json:"facilities"`
	Fallback   bool               `json:"fallback"`
}

// Selection of the facility a patient is taken to. Origin is geocoded
// from the report when not given.
type Selection struct {
	Owner    primitive.ObjectID
	ReportID primitive.ObjectID
	Facility schema.Facility
	Origin   *schema.Location
}

// RouteResult of a completed triage
type RouteResult struct {
	ReportID    primitive.ObjectID `json:"reportId"`
	State       State              `json:"state"`
	Destination string             `json:"destination"`
	DistanceKm  *float64           `json:"distanceKm"`
	ETAMinutes  *int               `json:"etaMinutes"`
}

type Orchestrator struct {
	store       ReportStore
	classifier  Classifier
	recommender Recommender
	locator     FacilityLocator
	estimator   RouteEstimator
	timeout     time.Duration
}

func NewOrchestrator(
	store ReportStore,
	classifier Classifier,
	recommender Recommender,
	locator FacilityLocator,
	estimator RouteEstimator,
	timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Orchestrator{
		store:       store,
		classifier:  classifier,
		recommender: recommender,
		locator:     locator,
		estimator:   estimator,
		timeout:     timeout,
	}
}

// Triage classifies a report and searches facilities for it. Severe
// patients are searched for emergency rooms; other patients for the
// department recommended for their symptoms.
func (o *Orchestrator) Triage(ctx context.Context, req Request) (*Result, error) {
	if req.ReportID == nil {
		req.PatientLocation = strings.TrimSpace(req.PatientLocation)
		req.Symptom = strings.TrimSpace(req.Symptom)
		if req.PatientLocation == "" {
			return nil, ErrEmptyPatientLocation
		}
		if req.Symptom == "" {
			return nil, ErrEmptySymptom
		}
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	report, err := o.report(ctx, req)
	if err != nil {
		return nil, o.fail(StateCreated, err)
	}

	logger := log.WithFields(log.Fields{
		"prefix": logPrefix,
		"report": report.ID.Hex(),
	})

	severity, err := o.classifier.PredictSeverity(ctx, report.Symptom)
	if err != nil {
		return nil, o.fail(StateClassifying, err)
	}
	severe := severity == schema.SeveritySevere

	if _, err := o.store.UpdateSeverityByID(ctx, report.ID, report.User, severe); err != nil {
		return nil, o.fail(StateClassifying, err)
	}
	logger.WithField("severe", severe).Info("report classified")

	result := &Result{
		ReportID: report.ID,
		Severe:   severe,
		Category: consts.EmergencyRoomCategory,
	}

	if !severe {
		department, err := o.recommender.PredictDepartment(ctx, report.Symptom)
		if err != nil {
			return nil, o.fail(StateRecommending, err)
		}
		result.Department = department
		result.Category = department
		logger.WithField("department", department).Info("department recommended")
	}

	located, err := o.locator.Locate(ctx, result.Category, report.PatientLocation)
	if err != nil {
		return nil, o.fail(StateLocatingFacility, err)
	}

	result.State = StateLocatingFacility
	result.Origin = located.Origin
	result.Facilities = located.Facilities
	result.Fallback = located.Fallback

	logger.WithFields(log.Fields{
		"category":   result.Category,
		"facilities": len(result.Facilities),
		"fallback":   result.Fallback,
	}).Info("facilities located")

	return result, nil
}

// SelectDestination records the selected facility and estimates the drive
// to it. A missing travel time does not fail the triage.
func (o *Orchestrator) SelectDestination(ctx context.Context, sel Selection) (*RouteResult, error) {
	sel.Facility.Name = strings.TrimSpace(sel.Facility.Name)
	if sel.Facility.Name == "" {
		return nil, ErrEmptyDestination
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	report, err := o.store.GetReport(ctx, sel.ReportID)
	if err != nil {
		return nil, o.fail(StateLocatingFacility, err)
	}
	if report.User != sel.Owner {
		return nil, o.fail(StateLocatingFacility, store.ErrReportNotFound)
	}

	if err := o.store.UpdateDestination(ctx, report.ID, sel.Owner, sel.Facility.Name); err != nil {
		return nil, o.fail(StateLocatingFacility, err)
	}

	result := &RouteResult{
		ReportID:    report.ID,
		Destination: sel.Facility.Name,
	}

	if sel.Facility.Location.IsZero() {
		result.State = StateCompleted
		return result, nil
	}

	var origin schema.Location
	if sel.Origin != nil && !sel.Origin.IsZero() {
		origin = *sel.Origin
	} else {
		origin, err = o.locator.Geocode(ctx, report.PatientLocation)
		if err != nil {
			return nil, o.fail(StateEstimatingRoute, err)
		}
	}

	estimate, err := o.estimator.Estimate(ctx, origin, sel.Facility.Location)
	if err != nil {
		return nil, o.fail(StateEstimatingRoute, err)
	}
	result.DistanceKm = estimate.DistanceKm
	result.ETAMinutes = estimate.ETAMinutes

	if estimate.ETAMinutes != nil {
		if err := o.store.UpdateEstimatedTime(ctx, report.ID, *estimate.ETAMinutes); err != nil {
			return nil, o.fail(StateEstimatingRoute, err)
		}
	}

	result.State = StateCompleted
	return result, nil
}

func (o *Orchestrator) report(ctx context.Context, req Request) (*schema.Report, error) {
	if req.ReportID == nil {
		return o.store.CreateReport(ctx, req.Owner, req.PatientLocation, req.Symptom)
	}

	report, err := o.store.GetReport(ctx, *req.ReportID)
	if err != nil {
		return nil, err
	}
	if report.User != req.Owner {
		return nil, store.ErrReportNotFound
	}
	return report, nil
}

func (o *Orchestrator) fail(stage State, err error) error {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"stage":  stage,
	}).WithError(err).Error("triage failed")

	if !errors.Is(err, store.ErrReportNotFound) && !errors.Is(err, store.ErrUserNotFound) {
		sentry.CaptureException(err)
	}

	return failed(stage, err)
}
