package consts

const (
	// EmergencyRoomCategory is the places-search category used for every severe patient.
	EmergencyRoomCategory = "응급실"

	// ParkingKeyword excludes parking lots that share a hospital's name.
	ParkingKeyword = "주차장"

	// SEARCH_RADIUS_KM is the preferred driving distance to a facility.
	SEARCH_RADIUS_KM = 3
	// FALLBACK_SEARCH_RADIUS_KM is used when nothing is found within SEARCH_RADIUS_KM.
	FALLBACK_SEARCH_RADIUS_KM = 100

	SEARCH_COUNT          = 20
	FALLBACK_SEARCH_COUNT = 50
)

// Labels produced by the prediction service.
const (
	SevereLabel      = "중증"
	NonSevereLabel   = "경증"
	PredictionFailed = "예측 실패"
)
