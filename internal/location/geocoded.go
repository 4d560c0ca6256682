package location

import (
	"log/slog"

	"github.com/kelvins/geocoder"
)

// GeocodedSource resolves a postal address to a coordinate through the
// Google Geocoding API and yields it once per StartUpdates. Lookup failures
// are logged and no fix is delivered.
type GeocodedSource struct {
	address geocoder.Address
	resolve func(geocoder.Address) (geocoder.Location, error)
	sub     subscription
	logger  *slog.Logger
}

// NewGeocodedSource sets the package-level geocoder key and returns a source
// for address.
func NewGeocodedSource(apiKey string, address geocoder.Address, logger *slog.Logger) *GeocodedSource {
	if logger == nil {
		logger = slog.Default()
	}
	geocoder.ApiKey = apiKey
	return &GeocodedSource{
		address: address,
		resolve: geocoder.Geocoding,
		logger:  logger,
	}
}

func (s *GeocodedSource) RequestAuthorization() {}

func (s *GeocodedSource) StartUpdates(onUpdate func(Coordinate)) {
	s.sub.start(onUpdate)
	go s.lookup()
}

func (s *GeocodedSource) StopUpdates() {
	s.sub.stop()
}

func (s *GeocodedSource) lookup() {
	loc, err := s.resolve(s.address)
	if err != nil {
		s.logger.Warn("geocoding failed", "city", s.address.City, "country", s.address.Country, "error", err)
		return
	}

	c := Coordinate{Latitude: loc.Latitude, Longitude: loc.Longitude}
	if err := c.Validate(); err != nil {
		s.logger.Warn("geocoder returned an invalid coordinate", "error", err)
		return
	}
	s.sub.deliver(c)
}
