package taskstore

import "time"

// idSource hands out millisecond timestamps as ids, bumped past the last
// issued value so two adds in the same millisecond still get distinct ids.
type idSource struct {
	now  func() time.Time
	last int64
}

func (s *idSource) next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
