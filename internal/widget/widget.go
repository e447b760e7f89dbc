package widget

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-widget/internal/models"
)

// Search outcomes passed to the observer.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// ErrEmptyCity rejects a search before any request is made. Its message is
// shown to the user as is.
var ErrEmptyCity = errors.New("Please enter a city name") //nolint:stylecheck

type weatherGetter interface {
	GetByCity(ctx context.Context, city string) (models.WeatherDisplay, error)
}

type searchObserver interface {
	ObserveSearch(outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveSearch(string) {}

// Widget owns a single display slot. The slot is either a complete card or
// nil; searches that overlap race and the one finishing last wins.
type Widget struct {
	weather     weatherGetter
	logger      zerolog.Logger
	observer    searchObserver
	defaultCity string

	mountOnce sync.Once

	mu      sync.RWMutex
	display *models.WeatherDisplay
}

func New(ws weatherGetter, logger zerolog.Logger, defaultCity string, observer searchObserver) *Widget {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Widget{
		weather:     ws,
		logger:      logger,
		observer:    observer,
		defaultCity: defaultCity,
	}
}

// Mount runs the initial search for the default city. Only the first call
// does anything; concurrent callers wait for it to finish. A user search
// that lands first takes the place of the mount.
func (w *Widget) Mount(ctx context.Context) {
	w.mountOnce.Do(func() {
		if err := w.lookup(ctx, w.defaultCity); err != nil {
			w.logger.Warn().Ctx(ctx).Err(err).Msg("initial search rejected")
		}
	})
}

// Search looks the city up and replaces the display slot with the result.
// Only an empty city is reported back; lookup failures clear the slot.
func (w *Widget) Search(ctx context.Context, city string) error {
	if city != "" {
		w.mountOnce.Do(func() {})
	}
	return w.lookup(ctx, city)
}

func (w *Widget) lookup(ctx context.Context, city string) error {
	if city == "" {
		w.observer.ObserveSearch(OutcomeRejected)
		return ErrEmptyCity
	}

	data, err := w.weather.GetByCity(ctx, city)
	if err != nil {
		w.logger.Error().
			Ctx(ctx).
			Str("city", city).
			Err(err).
			Msg("Error fetching weather data")
		w.observer.ObserveSearch(OutcomeFailure)
		w.set(nil)
		return nil
	}

	w.observer.ObserveSearch(OutcomeSuccess)
	w.set(&data)
	return nil
}

// Display returns a copy of the current card, nil when there is none.
func (w *Widget) Display() *models.WeatherDisplay {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.display == nil {
		return nil
	}
	d := *w.display
	return &d
}

func (w *Widget) set(d *models.WeatherDisplay) {
	w.mu.Lock()
	w.display = d
	w.mu.Unlock()
}
