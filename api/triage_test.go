package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medi-route/triage-api/consts"
	"github.com/medi-route/triage-api/geo"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/store"
	"github.com/medi-route/triage-api/triage"
)

func TestRunTriage(t *testing.T) {
	ts, finish := newTestServer(t)
	defer finish()

	distance := 1.2
	reportID := primitive.NewObjectID()
	ts.triager.EXPECT().Triage(gomock.Any(), triage.Request{
		Owner:           ts.doctor,
		PatientLocation: "서울특별시 종로구 대학로 101",
		Symptom:         "가슴 통증",
	}).Return(&triage.Result{
		ReportID: reportID,
		State:    triage.StateLocatingFacility,
		Severe:   true,
		Category: consts.EmergencyRoomCategory,
		Facilities: []schema.Facility{
			{Name: "서울대학교병원 응급실", DistanceKm: &distance},
		},
	}, nil).Times(1)

	w, resp := ts.asDoctor(t, "POST", "/api/v1/triage",
		`{"patientLocation":"서울특별시 종로구 대학로 101","symptom":"가슴 통증"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result triage.Result
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, reportID, result.ReportID)
	assert.Equal(t, triage.StateLocatingFacility, result.State)
	assert.True(t, result.Severe)
	assert.Len(t, result.Facilities, 1)
}

func TestRunTriageOfExistingReport(t *testing.T) {
	ts, finish := newTestServer(t)
	defer finish()

	reportID := primitive.NewObjectID()
	ts.triager.EXPECT().Triage(gomock.Any(), triage.Request{
		Owner:    ts.doctor,
		ReportID: &reportID,
	}).Return(&triage.Result{ReportID: reportID}, nil).Times(1)

	w, _ := ts.asDoctor(t, "POST", "/api/v1/triage", `{"reportId":"`+reportID.Hex()+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := ts.asDoctor(t, "POST", "/api/v1/triage", `{"reportId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(1010), resp.Code)
}

func TestRunTriageErrors(t *testing.T) {
	upstreamErr := errors.New("upstream returned 503")

	tests := []struct {
		name   string
		err    error
		status int
		code   int64
	}{
		{"empty location", triage.ErrEmptyPatientLocation, http.StatusBadRequest, 1202},
		{"empty symptom", triage.ErrEmptySymptom, http.StatusBadRequest, 1203},
		{"unknown report", &triage.StageError{State: triage.StateFailed, Stage: triage.StateCreated, Err: store.ErrReportNotFound}, http.StatusNotFound, 1200},
		{"classifier down", &triage.StageError{State: triage.StateFailed, Stage: triage.StateClassifying, Err: upstreamErr}, http.StatusInternalServerError, 1300},
		{"recommender down", &triage.StageError{State: triage.StateFailed, Stage: triage.StateRecommending, Err: upstreamErr}, http.StatusInternalServerError, 1301},
		{"places down", &triage.StageError{State: triage.StateFailed, Stage: triage.StateLocatingFacility, Err: upstreamErr}, http.StatusInternalServerError, 1302},
		{"no coordinate", &triage.StageError{State: triage.StateFailed, Stage: triage.StateLocatingFacility, Err: fmt.Errorf("geocode: %w", geo.ErrNoCoordinateFound)}, http.StatusUnprocessableEntity, 1303},
		{"database down", &triage.StageError{State: triage.StateFailed, Stage: triage.StateCreated, Err: upstreamErr}, http.StatusInternalServerError, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, finish := newTestServer(t)
			defer finish()

			ts.triager.EXPECT().Triage(gomock.Any(), gomock.Any()).Return(nil, tt.err).Times(1)

			w, resp := ts.asDoctor(t, "POST", "/api/v1/triage", `{"patientLocation":"서울특별시 중구","symptom":"두통"}`)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestSelectDestination(t *testing.T) {
	ts, finish := newTestServer(t)
	defer finish()

	reportID := primitive.NewObjectID()
	distance := 3.4
	eta := 12
	facility := schema.Facility{
		Name:     "서울대학교병원",
		Location: schema.Location{Latitude: 37.5796, Longitude: 126.9990},
	}

	ts.triager.EXPECT().SelectDestination(gomock.Any(), triage.Selection{
		Owner:    ts.doctor,
		ReportID: reportID,
		Facility: facility,
	}).Return(&triage.RouteResult{
		ReportID:    reportID,
		State:       triage.StateCompleted,
		Destination: facility.Name,
		DistanceKm:  &distance,
		ETAMinutes:  &eta,
	}, nil).Times(1)

	w, resp := ts.asDoctor(t, "POST", "/api/v1/triage/"+reportID.Hex()+"/destination",
		`{"name":"서울대학교병원","location":{"latitude":37.5796,"longitude":126.999}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result triage.RouteResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, triage.StateCompleted, result.State)
	require.NotNil(t, result.ETAMinutes)
	assert.Equal(t, 12, *result.ETAMinutes)
}

func TestSelectDestinationFailures(t *testing.T) {
	ts, finish := newTestServer(t)
	defer finish()

	ts.triager.EXPECT().SelectDestination(gomock.Any(), gomock.Any()).Return(nil, triage.ErrEmptyDestination).Times(1)
	ts.triager.EXPECT().SelectDestination(gomock.Any(), gomock.Any()).Return(nil, &triage.StageError{
		State: triage.StateFailed,
		Stage: triage.StateEstimatingRoute,
		Err:   errors.New("routes: circuit breaker is open"),
	}).Times(1)

	path := "/api/v1/triage/" + primitive.NewObjectID().Hex() + "/destination"

	w, resp := ts.asDoctor(t, "POST", path, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(1204), resp.Code)

	w, resp = ts.asDoctor(t, "POST", path, `{"name":"서울대학교병원","location":{"latitude":37.5796,"longitude":126.999}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, int64(1304), resp.Code)
}
