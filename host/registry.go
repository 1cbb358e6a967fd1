package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tri"
)

// Host names.
const (
	NameDesktop   = "desktop"
	NameWindow    = "window"
	NameHeadless  = "headless"
	NameOffscreen = "offscreen"
)

// Priority is the order Run tries hosts in when no name is given.
// Interactive hosts come first.
var Priority = []string{NameDesktop, NameWindow, NameHeadless, NameOffscreen}

var hosts = gpucontext.NewRegistry[Host](gpucontext.WithPriority(Priority...))

// Register makes a host available under name. Hosts call it from init.
// Registering a name again replaces the previous factory.
func Register(name string, factory func() Host) {
	hosts.Register(name, factory)
}

// Unregister removes a host.
func Unregister(name string) {
	hosts.Unregister(name)
}

// Available returns the registered host names in priority order.
func Available() []string {
	var names []string
	for _, n := range Priority {
		if hosts.Has(n) {
			names = append(names, n)
		}
	}
	rest := hosts.Available()
	slices.Sort(rest)
	for _, n := range rest {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

// Get returns a new instance of the named host.
func Get(name string) (Host, error) {
	if !hosts.Has(name) {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownHost, name, Available())
	}
	return hosts.Get(name), nil
}

// Run runs demo on the named host. An empty name tries every
// registered host in priority order until one is available.
func Run(ctx context.Context, name string, demo tri.Demo, cfg Config) error {
	if name != "" {
		h, err := Get(name)
		if err != nil {
			return err
		}
		return h.Run(ctx, demo, cfg)
	}

	var errs []error
	for _, n := range Available() {
		h := hosts.Get(n)
		err := h.Run(ctx, demo, cfg)
		if !errors.Is(err, ErrUnavailable) {
			return err
		}
		tri.Logger().Warn("host unavailable, trying next",
			slog.String("host", n),
			slog.Any("err", err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return fmt.Errorf("%w: no hosts registered", ErrUnavailable)
	}
	return errors.Join(errs...)
}
