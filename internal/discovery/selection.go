package discovery

// Origin tells where a selection change came from.
type Origin string

const (
	OriginList  Origin = "list"
	OriginMap   Origin = "map"
	OriginPanel Origin = "panel"
)

// Selection is the currently selected company, if any.
type Selection struct {
	CompanyID int
	Active    bool
}

// SelectionChange is delivered to subscribers after the store has been updated.
type SelectionChange struct {
	Previous Selection
	Current  Selection
	Origin   Origin
}

// SelectionStore owns the single "selected company" of a view.
// It is not safe for concurrent use; the owning session serializes calls.
type SelectionStore struct {
	current   Selection
	listeners map[int]func(SelectionChange)
	order     []int
	nextID    int
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{listeners: make(map[int]func(SelectionChange))}
}

// Current returns the selected company id and whether a selection is active.
func (s *SelectionStore) Current() (int, bool) {
	return s.current.CompanyID, s.current.Active
}

// Select replaces the current selection with companyID.
func (s *SelectionStore) Select(companyID int, origin Origin) {
	s.apply(Selection{CompanyID: companyID, Active: true}, origin)
}

// Clear drops the current selection. Clearing an empty store does not notify.
func (s *SelectionStore) Clear(origin Origin) {
	if !s.current.Active {
		return
	}
	s.apply(Selection{}, origin)
}

// Subscribe registers fn for every change and returns a function that removes it.
func (s *SelectionStore) Subscribe(fn func(SelectionChange)) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *SelectionStore) apply(next Selection, origin Origin) {
	change := SelectionChange{Previous: s.current, Current: next, Origin: origin}
	s.current = next

	// listeners may unsubscribe while being notified
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(change)
		}
	}
}
