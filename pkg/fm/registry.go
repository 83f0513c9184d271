package fm

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-logr/logr"
	"github.com/logandonley/fontmatch/internal/platform"
)

// RegisteredFont is a snapshot of one registry entry.
type RegisteredFont struct {
	Path  string // absolute path as first registered
	Count int    // outstanding registrations
	Order uint64 // installation order index
}

type registryEntry struct {
	path  string
	count int
	order uint64
}

// ResourceManager registers font files with the platform and keeps a
// reference count per file. Every successful change is broadcast to other
// consumers of the font set.
type ResourceManager struct {
	mu          sync.Mutex
	registrar   platform.Registrar
	broadcaster platform.Broadcaster
	log         logr.Logger
	entries     map[string]*registryEntry
	lastOrder   uint64
}

// NewResourceManager creates an empty registry. broadcaster may be nil.
func NewResourceManager(registrar platform.Registrar, broadcaster platform.Broadcaster, log logr.Logger) *ResourceManager {
	return &ResourceManager{
		registrar:   registrar,
		broadcaster: broadcaster,
		log:         log,
		entries:     make(map[string]*registryEntry),
	}
}

// Register adds one registration of the font file at path. If the platform
// adds no fonts, the registry is left as it was and a *ResourceError is
// returned.
func (rm *ResourceManager) Register(path string) error {
	key, abs, err := normalize(path)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	if err := rm.register(key, abs); err != nil {
		return err
	}
	rm.notify()
	return nil
}

func (rm *ResourceManager) register(key, abs string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	e, existed := rm.entries[key]
	if existed {
		e.count++
	} else {
		rm.lastOrder++
		e = &registryEntry{path: abs, count: 1, order: rm.lastOrder}
		rm.entries[key] = e
	}

	if rm.registrar.AddFontResource(abs) == 0 {
		if existed {
			e.count--
		} else {
			delete(rm.entries, key)
		}
		return &ResourceError{Op: "register", Path: abs}
	}

	rm.log.V(1).Info("registered font", "path", abs, "count", e.count, "order", e.order)
	return nil
}

// Unregister removes one registration of the font file at path. The entry
// disappears once its count drops to zero.
func (rm *ResourceManager) Unregister(path string) error {
	key, abs, err := normalize(path)
	if err != nil {
		return fmt.Errorf("unregister: %w", err)
	}

	if err := rm.unregister(key, abs); err != nil {
		return err
	}
	rm.notify()
	return nil
}

func (rm *ResourceManager) unregister(key, abs string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	e, ok := rm.entries[key]
	if !ok || e.count == 0 {
		return fmt.Errorf("unregister %s: %w", abs, ErrNotRegistered)
	}

	if rm.registrar.RemoveFontResource(e.path) == 0 {
		return &ResourceError{Op: "unregister", Path: e.path}
	}

	e.count--
	if e.count == 0 {
		delete(rm.entries, key)
	}
	rm.log.V(1).Info("unregistered font", "path", e.path, "count", e.count)
	return nil
}

// Order returns the installation order index of a registered path.
func (rm *ResourceManager) Order(path string) (uint64, bool) {
	key, _, err := normalize(path)
	if err != nil {
		return 0, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if e, ok := rm.entries[key]; ok {
		return e.order, true
	}
	return 0, false
}

// Count returns the number of outstanding registrations of path.
func (rm *ResourceManager) Count(path string) int {
	key, _, err := normalize(path)
	if err != nil {
		return 0
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if e, ok := rm.entries[key]; ok {
		return e.count
	}
	return 0
}

// Entries returns the registered fonts sorted by installation order.
func (rm *ResourceManager) Entries() []RegisteredFont {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	fonts := make([]RegisteredFont, 0, len(rm.entries))
	for _, e := range rm.entries {
		fonts = append(fonts, RegisteredFont{Path: e.path, Count: e.count, Order: e.order})
	}
	slices.SortFunc(fonts, func(a, b RegisteredFont) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return fonts
}

// Close releases every registration the manager still holds, most recent
// first.
func (rm *ResourceManager) Close() error {
	fonts := rm.Entries()
	var errs []error
	for i := len(fonts) - 1; i >= 0; i-- {
		for n := 0; n < fonts[i].Count; n++ {
			if err := rm.Unregister(fonts[i].Path); err != nil {
				errs = append(errs, err)
				break
			}
		}
	}
	return errors.Join(errs...)
}

func (rm *ResourceManager) notify() {
	if rm.broadcaster == nil {
		return
	}
	// Best effort: listeners refresh on their own schedule.
	if err := rm.broadcaster.NotifyFontChange(); err != nil {
		rm.log.V(1).Info("font change broadcast failed", "error", err.Error())
	}
}

func normalize(path string) (key, abs string, err error) {
	key, err = platform.NormalizePath(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	abs, err = filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return key, abs, nil
}
