package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/store"
)

// abortWithStoreError writes the response of a failed store operation
func abortWithStoreError(c *gin.Context, err error) {
	switch err {
	case store.ErrUserNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorUserNotFound)
	case store.ErrReportNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorReportNotFound)
	case store.ErrEmptyPatch:
		abortWithEncoding(c, http.StatusBadRequest, errorEmptyPatch)
	default:
		shouldInterupt(err, c)
	}
}

func reportID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return id, false
	}
	return id, true
}

func (s *Server) createReport(c *gin.Context) {
	var req struct {
		PatientLocation string `json:"patientLocation"`
		Symptom         string `json:"symptom"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	req.PatientLocation = strings.TrimSpace(req.PatientLocation)
	req.Symptom = strings.TrimSpace(req.Symptom)
	if req.PatientLocation == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptyPatientLocation)
		return
	}
	if req.Symptom == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptySymptom)
		return
	}

	report, err := s.mongoStore.CreateReport(c.Request.Context(), requester(c), req.PatientLocation, req.Symptom)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	responseWithData(c, http.StatusCreated, "report_created", report)
}

// getReportList returns the reports of the requester, newest first
func (s *Server) getReportList(c *gin.Context) {
	reports, err := s.mongoStore.ListReports(c.Request.Context(), requester(c))
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "ok", gin.H{"reports": reports})
}

func (s *Server) getReportDetail(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	report, err := s.mongoStore.GetReport(c.Request.Context(), id)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "ok", gin.H{"report": report})
}

// updateSeverity marks the latest report of the requester with the given
// address and symptoms. Clients only send it for severe patients, so
// isSevere defaults to true.
func (s *Server) updateSeverity(c *gin.Context) {
	var req struct {
		Address  string `json:"address"`
		Symptoms string `json:"symptoms"`
		IsSevere *bool  `json:"isSevere"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if strings.TrimSpace(req.Address) == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptyPatientLocation)
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptySymptom)
		return
	}

	severe := true
	if req.IsSevere != nil {
		severe = *req.IsSevere
	}

	report, err := s.mongoStore.UpdateSeverity(c.Request.Context(), schema.ReportCriteria{
		User:            requester(c),
		PatientLocation: strings.TrimSpace(req.Address),
		Symptom:         strings.TrimSpace(req.Symptoms),
	}, severe)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "report_updated", gin.H{"report": report})
}

func (s *Server) updateDestination(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	var req struct {
		Destination string `json:"destination"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorFacilityNotSelected)
		return
	}

	if err := s.mongoStore.UpdateDestination(c.Request.Context(), id, requester(c), destination); err != nil {
		abortWithStoreError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "report_updated", gin.H{
		"_id":         id,
		"destination": destination,
	})
}

func (s *Server) updateReport(c *gin.Context) {
	id, ok := reportID(c)
	if !ok {
		return
	}

	var patch schema.ReportPatch
	if err := c.BindJSON(&patch); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if patch.PatientLocation != nil && strings.TrimSpace(*patch.PatientLocation) == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptyPatientLocation)
		return
	}
	if patch.Symptom != nil && strings.TrimSpace(*patch.Symptom) == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptySymptom)
		return
	}
	if patch.Empty() {
		abortWithEncoding(c, http.StatusBadRequest, errorEmptyPatch)
		return
	}

	report, err := s.mongoStore.UpdateReport(c.Request.Context(), id, requester(c), patch)
	if err != nil {
		abortWithStoreError(c, err)
		return
	}

	responseWithData(c, http.StatusOK, "report_updated", gin.H{"report": report})
}
