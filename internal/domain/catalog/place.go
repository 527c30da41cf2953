package catalog

// Coordinates is a geographic point value object.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HubType classifies a transport hub.
type HubType string

const (
	HubTypeAirport HubType = "airport"
	HubTypeTrain   HubType = "train"
)

// IsValid returns true if the hub type is recognized.
func (t HubType) IsValid() bool {
	switch t {
	case HubTypeAirport, HubTypeTrain:
		return true
	}
	return false
}

// LogisticsEntry records how a place is reached from one transport hub.
// The hub name matches a known hub's full display name.
type LogisticsEntry struct {
	Hub          string  `json:"hub"`
	Type         HubType `json:"type"`
	DistanceKm   float64 `json:"distance_km"`
	DriveMinutes int     `json:"drive_minutes"`
}

// Place is a catalog entry produced by the offline content pipeline.
// The service consumes it read-only and does not validate its shape;
// missing fields degrade rendering rather than failing requests.
type Place struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	SubCategory string           `json:"sub_category"`
	State       string           `json:"state"`
	Rating      *float64         `json:"rating,omitempty"`
	Image       string           `json:"image,omitempty"`
	Coordinates Coordinates      `json:"coordinates"`
	Logistics   []LogisticsEntry `json:"logistics"`
}
