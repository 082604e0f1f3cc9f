package models

// ServiceID identifies a service category. The empty value means "all services".
type ServiceID string

// Known service categories.
const (
	AllServices     ServiceID = ""
	ServiceWalk     ServiceID = "walk"
	ServiceBath     ServiceID = "bath"
	ServiceBoarding ServiceID = "boarding"
	ServiceVisit    ServiceID = "visit"
	ServiceTraining ServiceID = "training"
	ServiceGrooming ServiceID = "grooming"
)

// OtherServiceLabel is shown for a company whose category is not in the catalog.
const OtherServiceLabel = "기타/Other"

// Service is the display metadata of a category.
type Service struct {
	ID   ServiceID `json:"id"`
	Name string    `json:"name"`
	Icon string    `json:"icon"`
}

var serviceCatalog = []Service{
	{ID: ServiceWalk, Name: "산책", Icon: "🐕"},
	{ID: ServiceBath, Name: "목욕", Icon: "🛁"},
	{ID: ServiceBoarding, Name: "위탁 돌봄", Icon: "🏠"},
	{ID: ServiceVisit, Name: "방문 돌봄", Icon: "🚪"},
	{ID: ServiceTraining, Name: "훈련", Icon: "🎓"},
	{ID: ServiceGrooming, Name: "미용", Icon: "✂️"},
}

// Services returns the catalog in display order.
func Services() []Service {
	out := make([]Service, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// LookupService returns the catalog entry for id.
func LookupService(id ServiceID) (Service, bool) {
	for _, s := range serviceCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// Known reports whether id is a catalog category.
func (id ServiceID) Known() bool {
	_, ok := LookupService(id)
	return ok
}

// ServiceLabel returns the display name for id, or OtherServiceLabel when id is unknown.
func ServiceLabel(id ServiceID) string {
	if s, ok := LookupService(id); ok {
		return s.Name
	}
	return OtherServiceLabel
}
