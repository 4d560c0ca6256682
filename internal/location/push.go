package location

import (
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrNotAuthorized is returned when a fix is pushed before location access was granted.
	ErrNotAuthorized = errors.New("location access not authorized")
	// ErrNotListening is returned when a fix arrives while updates are stopped.
	ErrNotListening = errors.New("location updates are not running")
)

// PushSource receives fixes from the host shell, which owns the actual
// device location hardware and permission prompt.
type PushSource struct {
	sub    subscription
	logger *slog.Logger

	mu         sync.Mutex
	authorized bool
	requested  bool
}

// NewPushSource creates a PushSource. Pass authorized=true when the host
// has already been granted location access.
func NewPushSource(authorized bool, logger *slog.Logger) *PushSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PushSource{authorized: authorized, logger: logger}
}

// RequestAuthorization records that the screen asked for location access.
// The grant itself arrives through Authorize.
func (s *PushSource) RequestAuthorization() {
	s.mu.Lock()
	s.requested = true
	authorized := s.authorized
	s.mu.Unlock()

	s.logger.Info("location authorization requested", "authorized", authorized)
}

// Authorize grants location access.
func (s *PushSource) Authorize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = true
}

// Authorized reports whether location access was granted.
func (s *PushSource) Authorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorized
}

// AuthorizationRequested reports whether RequestAuthorization was called.
func (s *PushSource) AuthorizationRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested
}

func (s *PushSource) StartUpdates(onUpdate func(Coordinate)) {
	s.sub.start(onUpdate)
}

func (s *PushSource) StopUpdates() {
	s.sub.stop()
}

// Push hands a fix to the running subscription. Delivery is asynchronous;
// a nil error means the fix was accepted, not that a fetch ran.
func (s *PushSource) Push(c Coordinate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !s.Authorized() {
		s.logger.Debug("dropping location fix, not authorized")
		return ErrNotAuthorized
	}

	fn := s.sub.current()
	if fn == nil {
		return ErrNotListening
	}
	go fn(c)
	return nil
}
