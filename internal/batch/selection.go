package batch

import "sync"

// Selection is the set of EANs marked for bulk operations.
type Selection interface {
	// Toggle flips membership of ean and reports whether it is now selected.
	Toggle(ean string) bool
	// SelectAll replaces the selection with eans.
	SelectAll(eans []string)
	Clear()
	Contains(ean string) bool
	// EANs returns the selection in insertion order.
	EANs() []string
	Len() int
	// Retain drops every selected EAN not present in keep.
	Retain(keep []string)
}

// SharedSelection is a single ordered set shared by both partitions, so a
// selection may span pending and completed records.
type SharedSelection struct {
	mu    sync.Mutex
	order []string
	set   map[string]struct{}
}

// NewSharedSelection returns an empty selection.
func NewSharedSelection() *SharedSelection {
	return &SharedSelection{set: make(map[string]struct{})}
}

func (s *SharedSelection) Toggle(ean string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[ean]; ok {
		s.removeLocked(ean)
		return false
	}
	s.set[ean] = struct{}{}
	s.order = append(s.order, ean)
	return true
}

func (s *SharedSelection) SelectAll(eans []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	s.set = make(map[string]struct{}, len(eans))
	for _, ean := range eans {
		if _, dup := s.set[ean]; dup {
			continue
		}
		s.set[ean] = struct{}{}
		s.order = append(s.order, ean)
	}
}

func (s *SharedSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.set = make(map[string]struct{})
}

func (s *SharedSelection) Contains(ean string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[ean]
	return ok
}

func (s *SharedSelection) EANs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *SharedSelection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *SharedSelection) Retain(keep []string) {
	allowed := make(map[string]struct{}, len(keep))
	for _, ean := range keep {
		allowed[ean] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.order[:0]
	for _, ean := range s.order {
		if _, ok := allowed[ean]; ok {
			kept = append(kept, ean)
			continue
		}
		delete(s.set, ean)
	}
	s.order = kept
}

func (s *SharedSelection) removeLocked(ean string) {
	delete(s.set, ean)
	for i, candidate := range s.order {
		if candidate == ean {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
