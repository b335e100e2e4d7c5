// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package backend

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ocitools/ocimcp/pkg/config"
)

// Factory constructs a provider connection from resolved configuration.
// Provider implementations (the real OCI client, test spies) register a
// factory under a name; the serve command resolves it by that name.
type Factory func(cfg *config.Config) (Connection, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]Factory{}
)

// RegisterProvider adds a connection factory by name. Names are
// case-insensitive. Registering a duplicate name is an error.
func RegisterProvider(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("backend: provider name required")
	}
	if factory == nil {
		return fmt.Errorf("backend: provider %s has nil factory", name)
	}

	providersMu.Lock()
	defer providersMu.Unlock()

	key := strings.ToLower(name)
	if _, exists := providers[key]; exists {
		return fmt.Errorf("backend: provider %s already registered", name)
	}
	providers[key] = factory
	return nil
}

// Provider fetches a registered connection factory by name.
func Provider(name string) (Factory, bool) {
	providersMu.RLock()
	defer providersMu.RUnlock()

	factory, ok := providers[strings.ToLower(name)]
	return factory, ok
}

// ProviderNames returns the sorted names of all registered providers.
func ProviderNames() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
