package location

// StaticSource yields one configured coordinate per StartUpdates.
type StaticSource struct {
	coord Coordinate
	sub   subscription
}

func NewStaticSource(c Coordinate) *StaticSource {
	return &StaticSource{coord: c}
}

// RequestAuthorization is a no-op: a configured coordinate needs no permission.
func (s *StaticSource) RequestAuthorization() {}

func (s *StaticSource) StartUpdates(onUpdate func(Coordinate)) {
	s.sub.start(onUpdate)
	go s.sub.deliver(s.coord)
}

func (s *StaticSource) StopUpdates() {
	s.sub.stop()
}
