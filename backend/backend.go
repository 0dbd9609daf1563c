package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/sprite/backend/software"
	"github.com/gogpu/sprite/backend/wgpu"
	"github.com/gogpu/sprite/render"
)

// ErrNotAvailable is returned when no backend can be created.
var ErrNotAvailable = errors.New("backend: not available")

// Priority is the order in which Default tries backends. GPU first,
// software as the fallback.
var Priority = []string{wgpu.Name, software.Name}

// Default returns the first backend in Priority that is registered and
// accepts opts. The errors of every rejected backend are joined into the
// returned error.
func Default(opts render.BackendOptions) (render.Backend, error) {
	var errs []error
	for _, name := range Priority {
		if !render.IsRegistered(name) {
			continue
		}
		b, err := render.NewBackend(name, opts)
		if err == nil {
			return b, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return nil, fmt.Errorf("%w: %w", ErrNotAvailable, errors.Join(errs...))
}

// Open returns the backend called name, or Default when name is empty.
func Open(name string, opts render.BackendOptions) (render.Backend, error) {
	if name == "" {
		return Default(opts)
	}
	return render.NewBackend(name, opts)
}
