package schema

// Severity is the binary outcome of symptom classification.
type Severity string

const (
	SeveritySevere    Severity = "severe"
	SeverityNonSevere Severity = "non_severe"
)

// POI is a place returned by a places search.
type POI struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// Facility is a care facility candidate for a patient. DistanceKm is nil
// when no driving route could be computed.
type Facility struct {
	Name       string   `json:"name"`
	Location   Location `json:"location"`
	DistanceKm *float64 `json:"distanceKm"`
}
