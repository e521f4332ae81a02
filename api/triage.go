package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medi-route/triage-api/geo"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/store"
	"github.com/medi-route/triage-api/triage"
)

// abortWithTriageError maps a pipeline failure to the stage it failed in
func abortWithTriageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, triage.ErrEmptyPatientLocation):
		abortWithEncoding(c, http.StatusBadRequest, errorEmptyPatientLocation)
		return
	case errors.Is(err, triage.ErrEmptySymptom):
		abortWithEncoding(c, http.StatusBadRequest, errorEmptySymptom)
		return
	case errors.Is(err, triage.ErrEmptyDestination):
		abortWithEncoding(c, http.StatusBadRequest, errorFacilityNotSelected)
		return
	case errors.Is(err, store.ErrUserNotFound):
		abortWithEncoding(c, http.StatusNotFound, errorUserNotFound, err)
		return
	case errors.Is(err, store.ErrReportNotFound):
		abortWithEncoding(c, http.StatusNotFound, errorReportNotFound, err)
		return
	case errors.Is(err, geo.ErrNoCoordinateFound):
		abortWithEncoding(c, http.StatusUnprocessableEntity, errorCoordinatesNotFound, err)
		return
	}

	var stageErr *triage.StageError
	if !errors.As(err, &stageErr) {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	switch stageErr.Stage {
	case triage.StateClassifying:
		abortWithEncoding(c, http.StatusInternalServerError, errorClassifyingFailed, err)
	case triage.StateRecommending:
		abortWithEncoding(c, http.StatusInternalServerError, errorRecommendingFailed, err)
	case triage.StateLocatingFacility:
		abortWithEncoding(c, http.StatusInternalServerError, errorLocatingFacilityFailed, err)
	case triage.StateEstimatingRoute:
		abortWithEncoding(c, http.StatusInternalServerError, errorEstimatingRouteFailed, err)
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	}
}

// runTriage classifies a patient and returns the facilities to choose from.
// A new report is created unless reportId refers to an existing one.
func (s *Server) runTriage(c *gin.Context) {
	var req struct {
		ReportID        string `json:"reportId"`
		PatientLocation string `json:"patientLocation"`
		Symptom         string `json:"symptom"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	triageReq := triage.Request{
		Owner:           requester(c),
		PatientLocation: req.PatientLocation,
		Symptom:         req.Symptom,
	}

	if req.ReportID != "" {
		id, err := primitive.ObjectIDFromHex(req.ReportID)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		triageReq.ReportID = &id
	}

	result, err := s.triager.Triage(c.Request.Context(), triageReq)
	if err != nil {
		abortWithTriageError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "ok", result)
}

func (s *Server) selectDestination(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	var req struct {
		Name     string           `json:"name"`
		Location schema.Location  `json:"location"`
		Origin   *schema.Location `json:"origin"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	result, err := s.triager.SelectDestination(c.Request.Context(), triage.Selection{
		Owner:    requester(c),
		ReportID: id,
		Facility: schema.Facility{
			Name:     req.Name,
			Location: req.Location,
		},
		Origin: req.Origin,
	})
	if err != nil {
		abortWithTriageError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "report_updated", result)
}
