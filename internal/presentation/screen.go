package presentation

import (
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ru"

	"github.com/i474232898/weather-now/internal/weather"
)

// DefaultLocale is used for unknown locale names.
const DefaultLocale = "en"

var translators = map[string]func() locales.Translator{
	"en": en.New,
	"ru": ru.New,
	"es": es.New,
	"de": de.New,
	"fr": fr.New,
}

// Screen is what the host draws: four labels, an icon asset and a gradient.
type Screen struct {
	Session     string          `json:"session"`
	Loading     bool            `json:"loading"`
	Weekday     string          `json:"weekday"`
	Location    string          `json:"location"`
	Condition   string          `json:"condition"`
	Temperature string          `json:"temperature"`
	Icon        string          `json:"icon,omitempty"`
	Palette     weather.Palette `json:"palette"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Presenter maps weather.Conditions to a Screen.
type Presenter struct {
	translator locales.Translator
	now        func() time.Time
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		p.now = now
	}
}

// NewPresenter creates a Presenter for a locale such as "en" or "ru-RU".
func NewPresenter(locale string, opts ...Option) *Presenter {
	p := &Presenter{
		translator: translatorFor(locale),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func translatorFor(locale string) locales.Translator {
	name := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(name, "-_"); i > 0 {
		name = name[:i]
	}
	if fn, ok := translators[name]; ok {
		return fn()
	}
	return translators[DefaultLocale]()
}

// Locale returns the CLDR locale the weekday labels are rendered in.
func (p *Presenter) Locale() string {
	return p.translator.Locale()
}

// Weekday is the full name of the current day in the presenter's locale.
func (p *Presenter) Weekday() string {
	return p.translator.WeekdayWide(p.now().Weekday())
}

// Loading is the screen shown until the first fetch completes: only the
// weekday is known and the day gradient is drawn.
func (p *Presenter) Loading(session string) Screen {
	return Screen{
		Session:   session,
		Loading:   true,
		Weekday:   p.Weekday(),
		Palette:   weather.DayPalette,
		UpdatedAt: p.now().UTC(),
	}
}

// Render builds the populated screen for c.
func (p *Presenter) Render(session string, c weather.Conditions) Screen {
	return Screen{
		Session:     session,
		Weekday:     p.Weekday(),
		Location:    c.LocationLabel,
		Condition:   c.ConditionName,
		Temperature: c.TemperatureC + "°",
		Icon:        weather.IconFor(c.ConditionCode),
		Palette:     weather.PaletteFor(c.IsDaytime),
		UpdatedAt:   p.now().UTC(),
	}
}
