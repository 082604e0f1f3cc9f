package discovery

import "pet_discovery/internal/models"

// fakeEngine is a MapEngine test double. With deferred set, triggered clicks are queued until
// flush, like a remote map that answers asynchronously.
type fakeEngine struct {
	markers     map[int]*fakeMarker
	triggers    []int
	removed     []int
	deferred    bool
	queued      []int
	triggerErr  error
	highlighted int
}

type fakeMarker struct {
	id  int
	cbs map[int]func(int)
	seq int
}

func (m *fakeMarker) CompanyID() int { return m.id }

func newFakeEngine() *fakeEngine {
	return &fakeEngine{markers: make(map[int]*fakeMarker)}
}

func (e *fakeEngine) AddMarker(c models.Company) Marker {
	m := &fakeMarker{id: c.ID, cbs: make(map[int]func(int))}
	e.markers[c.ID] = m
	return m
}

func (e *fakeEngine) RemoveMarker(m Marker) {
	e.removed = append(e.removed, m.CompanyID())
	delete(e.markers, m.CompanyID())
}

func (e *fakeEngine) TriggerEvent(m Marker, event string) error {
	if e.triggerErr != nil {
		return e.triggerErr
	}
	e.triggers = append(e.triggers, m.CompanyID())
	if e.deferred {
		e.queued = append(e.queued, m.CompanyID())
		return nil
	}
	e.click(m.CompanyID())
	return nil
}

func (e *fakeEngine) OnClick(m Marker, fn func(int)) func() {
	fm := m.(*fakeMarker)
	id := fm.seq
	fm.seq++
	fm.cbs[id] = fn
	return func() { delete(fm.cbs, id) }
}

// click simulates the user clicking a marker directly on the map.
func (e *fakeEngine) click(id int) {
	m, ok := e.markers[id]
	if !ok {
		return
	}
	e.highlighted = id
	for _, fn := range m.cbs {
		fn(id)
	}
}

func (e *fakeEngine) flush() {
	q := e.queued
	e.queued = nil
	for _, id := range q {
		e.click(id)
	}
}

func (e *fakeEngine) callbacks() int {
	n := 0
	for _, m := range e.markers {
		n += len(m.cbs)
	}
	return n
}

var (
	companyA = models.Company{ID: 1, Name: "Alpha Pet", RoadAddr: "서울 강남구 테헤란로 1", RepService: models.ServiceWalk}
	companyB = models.Company{ID: 2, Name: "Bravo Bath", RoadAddr: "서울 마포구 양화로 2", RepService: models.ServiceBath}
	companyC = models.Company{ID: 3, Name: "Charlie Care", RoadAddr: "부산 해운대구 3", RepService: models.ServiceWalk}
)

func sampleCompanies() []models.Company {
	return []models.Company{companyA, companyB, companyC}
}

func ids(cs []models.Company) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
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
