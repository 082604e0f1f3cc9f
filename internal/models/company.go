package models

// Coordinates is a position on the map engine's plane (x = longitude, y = latitude).
type Coordinates struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Company is a pet-care provider listing. Values are treated as read-only once fetched.
type Company struct {
	ID          int         `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	RoadAddr    string      `json:"road_addr" yaml:"road_addr"`
	Tel         string      `json:"tel" yaml:"tel"`
	RepService  ServiceID   `json:"rep_service" yaml:"rep_service"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	// CreatedBy is the admin who added the company through the API; 0 for seeded rows.
	CreatedBy   int         `json:"created_by,omitempty" yaml:"-"`
}
