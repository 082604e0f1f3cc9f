package service

import (
	"context"
	"sync"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/models"
	"pet_discovery/internal/repository"
)

// fakeEventRepo records appended events and the last List filter.
type fakeEventRepo struct {
	mu        sync.Mutex
	appended  []models.SelectionEvent
	appendErr error

	gotFilter repository.EventFilter
	events    []models.SelectionEvent
	err       error
	calls     int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.SelectionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, ef repository.EventFilter) ([]models.SelectionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFilter = ef
	return f.events, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

func (f *fakeEventRepo) last() models.SelectionEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.appended) == 0 {
		return models.SelectionEvent{}
	}
	return f.appended[len(f.appended)-1]
}

// fakeCompanyRepo serves a fixed listing.
type fakeCompanyRepo struct {
	companies []models.Company
	listErr   error
	created   []models.Company
	listCalls int
}

func (f *fakeCompanyRepo) List(context.Context) ([]models.Company, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Company(nil), f.companies...), nil
}

func (f *fakeCompanyRepo) Get(_ context.Context, id int) (models.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Company{}, repository.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) Create(_ context.Context, c models.Company) (int, error) {
	c.ID = len(f.companies) + len(f.created) + 1
	f.created = append(f.created, c)
	return c.ID, nil
}

func (f *fakeCompanyRepo) UpsertAll(_ context.Context, cs []models.Company) error {
	f.created = append(f.created, cs...)
	return nil
}

// fakeRemote is a client map that answers triggers only when the test says so.
type fakeRemote struct {
	mu          sync.Mutex
	dispatched  []int
	dispatchErr error
	pushes      []ViewState
	details     []*discovery.Detail
}

func (r *fakeRemote) Dispatch(companyID int, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dispatchErr != nil {
		return r.dispatchErr
	}
	r.dispatched = append(r.dispatched, companyID)
	return nil
}

func (r *fakeRemote) Push(state ViewState, detail *discovery.Detail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes = append(r.pushes, state)
	r.details = append(r.details, detail)
	return nil
}

var sampleCompanies = []models.Company{
	{ID: 1, Name: "Alpha Pet", RoadAddr: "서울 강남구 테헤란로 1", RepService: models.ServiceWalk, Coordinates: models.Coordinates{X: 127.02, Y: 37.50}},
	{ID: 2, Name: "Bravo Bath", RoadAddr: "서울 마포구 양화로 2", RepService: models.ServiceBath, Coordinates: models.Coordinates{X: 126.92, Y: 37.55}},
	{ID: 3, Name: "Charlie Care", RoadAddr: "부산 해운대구 3", RepService: models.ServiceWalk, Coordinates: models.Coordinates{X: 129.16, Y: 35.16}},
}

func pinIDs(ps []discovery.Pin) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.CompanyID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
