package envbridge

import (
	"os"
	"sort"
	"sync"

	"github.com/shinji-kodama/minikube-envbridge/internal/model"
)

// Sink is the only way the bridge writes environment variables.
type Sink interface {
	Setenv(key, value string) error
}

// OSSink writes to the real process environment with os.Setenv.
// Values become visible to this process and to any subprocess it starts
// afterwards. It does no locking.
type OSSink struct{}

// Setenv sets key to value in the process environment.
func (OSSink) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// MapSink is an in-memory environment. It is safe for concurrent use.
// The zero value is ready to use.
type MapSink struct {
	mu   sync.Mutex
	vars map[string]string
}

// NewMapSink creates a MapSink pre-populated with initial. The map is copied.
func NewMapSink(initial map[string]string) *MapSink {
	s := &MapSink{vars: make(map[string]string, len(initial))}
	for k, v := range initial {
		s.vars[k] = v
	}
	return s
}

// Setenv sets key to value, overwriting any existing value.
func (s *MapSink) Setenv(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vars == nil {
		s.vars = make(map[string]string)
	}
	s.vars[key] = value
	return nil
}

// Lookup returns the value for key and whether it is set.
func (s *MapSink) Lookup(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vars[key]
	return v, ok
}

// Snapshot returns a copy of the current variables.
func (s *MapSink) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// RecordingSink forwards every write to Next and remembers what was written.
// The CLI uses it to report which variables a bridge call set.
type RecordingSink struct {
	Next Sink

	mu      sync.Mutex
	applied []model.Assignment
}

// NewRecordingSink wraps next.
func NewRecordingSink(next Sink) *RecordingSink {
	return &RecordingSink{Next: next}
}

// Setenv writes to Next and records the assignment only if the write succeeded.
func (s *RecordingSink) Setenv(key, value string) error {
	if err := s.Next.Setenv(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = append(s.applied, model.Assignment{Key: key, Value: value})
	return nil
}

// Applied returns every recorded write in order, duplicates included.
func (s *RecordingSink) Applied() []model.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Assignment(nil), s.applied...)
}

// Final returns the last value written for each key, sorted by key.
func (s *RecordingSink) Final() []model.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := make(map[string]string, len(s.applied))
	for _, a := range s.applied {
		last[a.Key] = a.Value
	}

	out := make([]model.Assignment, 0, len(last))
	for k, v := range last {
		out = append(out, model.Assignment{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
