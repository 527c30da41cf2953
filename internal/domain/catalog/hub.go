package catalog

// Hub is an entry in the static transport hub directory.
type Hub struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        HubType     `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

// DefaultDirectory returns the built-in hub directory for the Northeast
// India region, used to seed the hubs table on first boot.
func DefaultDirectory() []Hub {
	return []Hub{
		{ID: "guwahati-airport", Name: "Guwahati Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 26.1061, Lng: 91.5859}},
		{ID: "guwahati-railway", Name: "Guwahati Railway Station", Type: HubTypeTrain, Coordinates: Coordinates{Lat: 26.1818, Lng: 91.7539}},
		{ID: "dibrugarh-airport", Name: "Dibrugarh Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 27.4839, Lng: 95.0169}},
		{ID: "silchar-airport", Name: "Silchar Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 24.9129, Lng: 92.9787}},
		{ID: "shillong-airport", Name: "Shillong Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 25.7036, Lng: 91.9787}},
		{ID: "agartala-airport", Name: "Agartala Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 23.8870, Lng: 91.2404}},
		{ID: "imphal-airport", Name: "Imphal Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 24.7600, Lng: 93.8967}},
		{ID: "dimapur-airport", Name: "Dimapur Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 25.8839, Lng: 93.7712}},
		{ID: "dimapur-railway", Name: "Dimapur Railway Station", Type: HubTypeTrain, Coordinates: Coordinates{Lat: 25.9063, Lng: 93.7268}},
		{ID: "naharlagun-railway", Name: "Naharlagun Railway Station", Type: HubTypeTrain, Coordinates: Coordinates{Lat: 27.1047, Lng: 93.6953}},
		{ID: "new-haflong-railway", Name: "New Haflong Railway Station", Type: HubTypeTrain, Coordinates: Coordinates{Lat: 25.1750, Lng: 93.0180}},
		{ID: "lengpui-airport", Name: "Lengpui Airport", Type: HubTypeAirport, Coordinates: Coordinates{Lat: 23.8406, Lng: 92.6197}},
	}
}
