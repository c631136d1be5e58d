package resolver

// Pair is one settled choice: a canonical group key and the chosen option's
// display name.
type Pair struct {
	GroupKey string
	Option   string
}

// Selection maps canonical group keys to chosen option display names while
// preserving insertion order. It has exactly one writer at a time (the
// current event handler); no locking.
type Selection struct {
	order  []string
	chosen map[string]string
}

func NewSelection() *Selection {
	return &Selection{chosen: make(map[string]string)}
}

// Get returns the chosen option name for a group.
func (s *Selection) Get(groupKey string) (string, bool) {
	v, ok := s.chosen[groupKey]
	return v, ok
}

// Set records a choice, appending the group to the iteration order on first
// insert.
func (s *Selection) Set(groupKey, option string) {
	if _, ok := s.chosen[groupKey]; !ok {
		s.order = append(s.order, groupKey)
	}
	s.chosen[groupKey] = option
}

// Delete removes a group's entry entirely.
func (s *Selection) Delete(groupKey string) {
	if _, ok := s.chosen[groupKey]; !ok {
		return
	}
	delete(s.chosen, groupKey)
	for i, k := range s.order {
		if k == groupKey {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of settled entries.
func (s *Selection) Len() int {
	return len(s.chosen)
}

// Pairs returns the entries in insertion order.
func (s *Selection) Pairs() []Pair {
	pairs := make([]Pair, 0, len(s.order))
	for _, k := range s.order {
		pairs = append(pairs, Pair{GroupKey: k, Option: s.chosen[k]})
	}
	return pairs
}

// Snapshot returns a plain map copy of the current state.
func (s *Selection) Snapshot() map[string]string {
	out := make(map[string]string, len(s.chosen))
	for k, v := range s.chosen {
		out[k] = v
	}
	return out
}

// Equal reports whether two selections hold identical entries, ignoring
// order.
func (s *Selection) Equal(other map[string]string) bool {
	if len(s.chosen) != len(other) {
		return false
	}
	for k, v := range s.chosen {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
