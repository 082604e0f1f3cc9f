package discovery

import "testing"

func TestSelectionStore_SingleSelection(t *testing.T) {
	t.Parallel()

	s := NewSelectionStore()
	if _, ok := s.Current(); ok {
		t.Fatalf("new store must start empty")
	}

	var changes []SelectionChange
	s.Subscribe(func(c SelectionChange) { changes = append(changes, c) })

	s.Select(1, OriginList)
	s.Select(3, OriginMap)
	id, ok := s.Current()
	if !ok || id != 3 {
		t.Fatalf("current = %d,%v, want 3,true", id, ok)
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(changes))
	}
	if changes[1].Previous.CompanyID != 1 || changes[1].Current.CompanyID != 3 || changes[1].Origin != OriginMap {
		t.Fatalf("unexpected second change: %+v", changes[1])
	}

	s.Clear(OriginPanel)
	if _, ok := s.Current(); ok {
		t.Fatalf("expected empty after Clear")
	}
	s.Clear(OriginPanel)
	if len(changes) != 3 {
		t.Fatalf("clearing an empty store must not notify, got %d changes", len(changes))
	}
}

func TestSelectionStore_ListenersSeeAppliedState(t *testing.T) {
	t.Parallel()

	s := NewSelectionStore()
	var seen int
	s.Subscribe(func(SelectionChange) {
		seen, _ = s.Current()
	})
	s.Select(7, OriginMap)
	if seen != 7 {
		t.Fatalf("listener observed %d before the store was updated", seen)
	}
}

func TestSelectionStore_Unsubscribe(t *testing.T) {
	t.Parallel()

	s := NewSelectionStore()
	calls := 0
	var cancel func()
	cancel = s.Subscribe(func(SelectionChange) {
		calls++
		cancel()
	})
	other := 0
	s.Subscribe(func(SelectionChange) { other++ })

	s.Select(1, OriginMap)
	s.Select(2, OriginMap)
	cancel()

	if calls != 1 {
		t.Fatalf("self-unsubscribing listener called %d times, want 1", calls)
	}
	if other != 2 {
		t.Fatalf("second listener called %d times, want 2", other)
	}
}
