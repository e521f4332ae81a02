package api

import (
	"github.com/medi-route/triage-api/store"
	"github.com/medi-route/triage-api/triage"
)

type errorMessage struct {
	id      string
	message string
}

var (
	errorMessageMap = map[int64]errorMessage{
		999:  {"internal_server_error", "internal server error"},
		1001: {"authentication_required", "authentication required"},
		1003: {"invalid_token", "invalid token"},
		1004: {"insufficient_permissions", "insufficient permissions"},

		1010: {"invalid_parameters", "invalid parameters"},
		1011: {"cannot_parse_request", "cannot parse request"},

		1100: {"user_taken", store.ErrUserTaken.Error()},
		1101: {"user_not_found", store.ErrUserNotFound.Error()},
		1102: {"invalid_role", store.ErrInvalidRole.Error()},

		1200: {"report_not_found", store.ErrReportNotFound.Error()},
		1201: {"empty_patch", store.ErrEmptyPatch.Error()},
		1202: {"empty_patient_location", triage.ErrEmptyPatientLocation.Error()},
		1203: {"empty_symptom", triage.ErrEmptySymptom.Error()},
		1204: {"facility_not_selected", triage.ErrEmptyDestination.Error()},

		1300: {"stage_classifying_failed", "symptom classification failed"},
		1301: {"stage_recommending_failed", "department recommendation failed"},
		1302: {"stage_locating_facility_failed", "facility search failed"},
		1303: {"coordinates_not_found", "no coordinate found for the address"},
		1304: {"stage_estimating_route_failed", "route estimation failed"},

		1400: {"emergency_info_failed", "emergency room information is unavailable"},
	}

	errorInternalServer           = errorJSON(999)
	errorAuthenticationRequired   = errorJSON(1001)
	errorInvalidToken             = errorJSON(1003)
	errorInsufficientPermissions  = errorJSON(1004)
	errorInvalidParameters        = errorJSON(1010)
	errorCannotParseRequest       = errorJSON(1011)
	errorUserTaken                = errorJSON(1100)
	errorUserNotFound             = errorJSON(1101)
	errorInvalidRole              = errorJSON(1102)
	errorReportNotFound           = errorJSON(1200)
	errorEmptyPatch               = errorJSON(1201)
	errorEmptyPatientLocation     = errorJSON(1202)
	errorEmptySymptom             = errorJSON(1203)
	errorFacilityNotSelected      = errorJSON(1204)
	errorClassifyingFailed        = errorJSON(1300)
	errorRecommendingFailed       = errorJSON(1301)
	errorLocatingFacilityFailed   = errorJSON(1302)
	errorCoordinatesNotFound      = errorJSON(1303)
	errorEstimatingRouteFailed    = errorJSON(1304)
	errorEmergencyInfoUnavailable = errorJSON(1400)
)

// ErrorResponse is the envelope of a failed request. Message is localized
// from messageID when the response is written.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Code      int64       `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	messageID string
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	msg, ok := errorMessageMap[code]
	if !ok {
		msg = errorMessage{"unknown", "unknown"}
	}

	return ErrorResponse{
		Code:      code,
		Message:   msg.message,
		messageID: msg.id,
	}
}
