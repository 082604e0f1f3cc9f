package discovery

import "pet_discovery/internal/models"

// Detail is the full view of the selected company.
type Detail struct {
	CompanyID    int                `json:"company_id"`
	Name         string             `json:"name"`
	RoadAddr     string             `json:"road_addr"`
	Tel          string             `json:"tel"`
	ServiceLabel string             `json:"service_label"`
	ServiceIcon  string             `json:"service_icon,omitempty"`
	Description  string             `json:"description,omitempty"`
	Coordinates  models.Coordinates `json:"coordinates"`
}

// DetailPanel renders the current selection.
type DetailPanel struct {
	store  *SelectionStore
	lookup func(id int) (models.Company, bool)
}

func NewDetailPanel(store *SelectionStore, lookup func(id int) (models.Company, bool)) *DetailPanel {
	return &DetailPanel{store: store, lookup: lookup}
}

// Render returns the detail of the selected company. It returns false when nothing is selected
// or the selected id is not in the company set.
func (p *DetailPanel) Render() (Detail, bool) {
	id, ok := p.store.Current()
	if !ok {
		return Detail{}, false
	}
	c, ok := p.lookup(id)
	if !ok {
		return Detail{}, false
	}
	return detailOf(c), true
}

// Close dismisses the panel and clears the selection.
func (p *DetailPanel) Close() {
	p.store.Clear(OriginPanel)
}

func detailOf(c models.Company) Detail {
	d := Detail{
		CompanyID:    c.ID,
		Name:         c.Name,
		RoadAddr:     c.RoadAddr,
		Tel:          c.Tel,
		ServiceLabel: models.OtherServiceLabel,
		Description:  c.Description,
		Coordinates:  c.Coordinates,
	}
	if s, ok := models.LookupService(c.RepService); ok {
		d.ServiceLabel = s.Name
		d.ServiceIcon = s.Icon
	}
	return d
}
