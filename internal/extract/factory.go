package extract

import (
	"fmt"

	"tripstack/internal/config"
	"tripstack/internal/port"
)

// ProviderFactory creates an Extractor from a provider config.
type ProviderFactory func(cfg *config.ExtractorProviderConfig) (port.Extractor, error)

// registry of extractor provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates an Extractor from a provider config using the
// registered factory.
func NewExtractor(cfg *config.ExtractorProviderConfig) (port.Extractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
