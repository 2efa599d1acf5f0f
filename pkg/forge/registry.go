package forge

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
)

// Settings carries what a backend needs to talk to its platform.
type Settings struct {
	// Token is the bearer credential.
	Token string

	// APIURL overrides the platform API base URL.
	APIURL string

	// WebHost overrides the host used in web and clone URLs.
	WebHost string

	// HTTPClient overrides the HTTP client used for API calls.
	HTTPClient *http.Client
}

// Constructor builds a Forge from settings.
type Constructor func(Settings) (Forge, error)

var (
	mu           sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register registers a forge constructor under name.
// If a constructor with the same name is already registered, it returns an error.
func Register(name string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("cannot register nil forge constructor")
	}
	if name == "" {
		return fmt.Errorf("forge name cannot be empty")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := constructors[name]; exists {
		return fmt.Errorf("forge '%s' is already registered", name)
	}

	constructors[name] = ctor
	return nil
}

// List returns all registered forge names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the forge registered under name.
func New(name string, settings Settings) (Forge, error) {
	mu.RLock()
	ctor, ok := constructors[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnsupportedForge, name, List())
	}
	return ctor(settings)
}
