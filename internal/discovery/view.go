package discovery

import (
	"errors"
	"fmt"

	"pet_discovery/internal/models"
)

// ErrInvalidPageSize is returned when a view is created with a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be a positive integer")

// Empty-state messages.
const (
	emptyNoCompanies = "등록된 업체가 없습니다"
	emptyNoResultsF  = "'%s'에 대한 검색 결과가 없습니다"
)

// Card is a list entry: the company plus its per-render display attributes.
type Card struct {
	models.Company
	ServiceLabel string            `json:"service_label"`
	Display      DisplayAttributes `json:"display"`
}

// Pin is a marker the map should draw for a company in the filtered set.
type Pin struct {
	CompanyID   int                `json:"company_id"`
	Name        string             `json:"name"`
	Coordinates models.Coordinates `json:"coordinates"`
}

// Snapshot is everything the surrounding shell needs to draw the list, the map highlight and the
// detail panel.
type Snapshot struct {
	Filter            FilterState `json:"filter"`
	FilteredCount     int         `json:"filtered_count"`
	CurrentPage       int         `json:"current_page"`
	TotalPages        int         `json:"total_pages"`
	PageSize          int         `json:"page_size"`
	Page              []Card      `json:"page"`
	Markers           []Pin       `json:"markers"`
	EmptyMessage      string      `json:"empty_message,omitempty"`
	SelectedCompanyID *int        `json:"selected_company_id"`
	PendingCompanyID  *int        `json:"pending_company_id,omitempty"`
	LastMiss          *Miss       `json:"last_miss,omitempty"`
}

// ViewConfig configures a View.
type ViewConfig struct {
	PageSize int
	Engine   MapEngine
	Metrics  PlaceholderMetrics // defaults to NewMockMetrics()
}

// View coordinates filtering, pagination and selection for one mounted discovery page.
// A selection that falls outside the filtered set is retained until replaced or cleared.
// It is not safe for concurrent use.
type View struct {
	companies []models.Company
	byID      map[int]int

	filter   FilterState
	pageSize int
	page     int
	filtered []models.Company

	store   *SelectionStore
	bridge  *MarkerSyncBridge
	panel   *DetailPanel
	metrics PlaceholderMetrics
	closed  bool
}

// NewView mounts a view over companies with default filter, page 1 and no selection.
func NewView(companies []models.Company, cfg ViewConfig) (*View, error) {
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, cfg.PageSize)
	}
	if cfg.Engine == nil {
		return nil, errors.New("map engine is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMockMetrics()
	}

	v := &View{
		companies: companies,
		byID:      make(map[int]int, len(companies)),
		pageSize:  cfg.PageSize,
		page:      1,
		store:     NewSelectionStore(),
		metrics:   cfg.Metrics,
	}
	for i, c := range companies {
		v.byID[c.ID] = i
	}
	v.bridge = NewMarkerSyncBridge(cfg.Engine, v.store)
	v.panel = NewDetailPanel(v.store, v.lookup)
	v.refilter()
	return v, nil
}

// SetFilter replaces the filter state and resets to page 1.
func (v *View) SetFilter(f FilterState) {
	if v.closed {
		return
	}
	v.filter = f
	v.page = 1
	v.refilter()
}

// SetQuery changes the search text and resets to page 1.
func (v *View) SetQuery(q string) {
	f := v.filter
	f.Query = q
	v.SetFilter(f)
}

// SetService changes the category filter and resets to page 1.
func (v *View) SetService(s models.ServiceID) {
	f := v.filter
	f.Service = s
	v.SetFilter(f)
}

// SetPage moves to requested, clamped into range, and returns the page actually shown.
func (v *View) SetPage(requested int) int {
	if v.closed {
		return v.page
	}
	v.page = ClampPage(requested, TotalPages(len(v.filtered), v.pageSize))
	return v.page
}

// SelectFromList forwards a list click to the map engine. See MarkerSyncBridge.SelectFromList.
func (v *View) SelectFromList(companyID int) bool {
	return v.bridge.SelectFromList(companyID)
}

// ClearSelection closes the detail panel.
func (v *View) ClearSelection() {
	if v.closed {
		return
	}
	v.panel.Close()
}

// Detail renders the detail panel.
func (v *View) Detail() (Detail, bool) {
	return v.panel.Render()
}

// Selected returns the selected company id.
func (v *View) Selected() (int, bool) {
	return v.store.Current()
}

// Subscribe registers fn for selection changes. Changes are delivered after the store is updated.
func (v *View) Subscribe(fn func(SelectionChange)) func() {
	return v.store.Subscribe(fn)
}

// OnMiss registers fn for list selections that could not reach the map.
func (v *View) OnMiss(fn func(Miss)) {
	v.bridge.OnMiss(fn)
}

// Filtered returns the current filtered list.
func (v *View) Filtered() []models.Company {
	return v.filtered
}

// Snapshot computes the view outputs. Display attributes are recomputed on every call.
func (v *View) Snapshot() Snapshot {
	p := Paginate(v.filtered, v.pageSize, v.page)
	cards := make([]Card, 0, len(p.Items))
	for _, c := range p.Items {
		cards = append(cards, Card{
			Company:      c,
			ServiceLabel: models.ServiceLabel(c.RepService),
			Display:      v.metrics.Attributes(c),
		})
	}

	snap := Snapshot{
		Filter:        v.filter,
		FilteredCount: len(v.filtered),
		CurrentPage:   p.Number,
		TotalPages:    p.TotalPages,
		PageSize:      v.pageSize,
		Page:          cards,
		Markers:       pins(v.filtered),
		LastMiss:      v.bridge.LastMiss(),
	}
	if len(v.filtered) == 0 {
		snap.EmptyMessage = EmptyMessage(v.filter.Query)
	}
	if id, ok := v.store.Current(); ok {
		snap.SelectedCompanyID = &id
	}
	if id, ok := v.bridge.Pending(); ok {
		snap.PendingCompanyID = &id
	}
	return snap
}

// Close deregisters all map callbacks. Later mutations are ignored.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.bridge.Close()
	v.closed = true
}

func (v *View) refilter() {
	v.filtered = Filter(v.companies, v.filter.Query, v.filter.Service)
	v.bridge.Sync(v.filtered)
}

func pins(companies []models.Company) []Pin {
	out := make([]Pin, 0, len(companies))
	for _, c := range companies {
		out = append(out, Pin{CompanyID: c.ID, Name: c.Name, Coordinates: c.Coordinates})
	}
	return out
}

func (v *View) lookup(id int) (models.Company, bool) {
	i, ok := v.byID[id]
	if !ok {
		return models.Company{}, false
	}
	return v.companies[i], true
}

// EmptyMessage is the text shown when filtering leaves no companies.
func EmptyMessage(query string) string {
	if query != "" {
		return fmt.Sprintf(emptyNoResultsF, query)
	}
	return emptyNoCompanies
}
