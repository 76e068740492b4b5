package platform

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoBackend is returned when no driver implementation is linked in.
var ErrNoBackend = errors.New("no automation backend registered; import internal/platform/winium")

// ErrNotFound is returned when a locator matches no control.
var ErrNotFound = errors.New("control not found")

// SessionOptions configures a new driver session.
type SessionOptions struct {
	// URL of the Winium endpoint, e.g. http://localhost:9999.
	URL string
	// App is the full path of the executable to launch.
	App string
	// Args are passed to the application on its command line.
	Args string
	// LaunchDelay is how long the endpoint waits after starting the app.
	LaunchDelay time.Duration
	// Attach connects to a running instance of App instead of starting it.
	Attach bool
}

// Validate checks the options needed by every backend.
func (o SessionOptions) Validate() error {
	if o.URL == "" {
		return errors.New("endpoint url is required (--url or WINIUM_URL)")
	}
	if o.App == "" {
		return errors.New("application path is required")
	}
	return nil
}

// NewDriverFunc is set by backend packages via init().
// See internal/platform/winium for the Winium registration.
var NewDriverFunc func(opts SessionOptions) (Driver, error)

// NewDriver opens a session with the registered backend.
func NewDriver(opts SessionOptions) (Driver, error) {
	if NewDriverFunc == nil {
		return nil, ErrNoBackend
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	d, err := NewDriverFunc(opts)
	if err != nil {
		return nil, fmt.Errorf("open session at %s: %w", opts.URL, err)
	}
	return d, nil
}

// First returns the first control matching xpath, or ErrNotFound.
func First(d Driver, xpath string) (Control, error) {
	found, err := d.FindAll(xpath)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, xpath)
	}
	return found[0], nil
}
