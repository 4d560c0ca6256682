package location

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrInvalidCoordinate is returned for coordinates outside ±90/±180 degrees.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is one device fix in signed decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// Validate checks the coordinate ranges.
func (c Coordinate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinate, err)
	}
	return nil
}

// Source supplies device fixes. After RequestAuthorization and StartUpdates
// the source calls onUpdate asynchronously for each fix until StopUpdates.
// A source that never yields a fix never calls onUpdate; there is no error
// channel.
type Source interface {
	RequestAuthorization()
	StartUpdates(onUpdate func(Coordinate))
	StopUpdates()
}

// subscription holds the active update callback shared by the sources below.
type subscription struct {
	mu       sync.Mutex
	onUpdate func(Coordinate)
}

func (s *subscription) start(onUpdate func(Coordinate)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = onUpdate
}

func (s *subscription) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = nil
}

func (s *subscription) current() func(Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onUpdate
}

// deliver calls the current callback, if updates are running. It reports
// whether the fix was delivered.
func (s *subscription) deliver(c Coordinate) bool {
	fn := s.current()
	if fn == nil {
		return false
	}
	fn(c)
	return true
}
