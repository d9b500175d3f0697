package match

import (
	"context"
	"fmt"
	"log"
)

// Instanced - A Set-specific detector.
type Instanced interface {
	// Name - The name of the detector for logging and metrics.
	Name() string

	// CheckVideo - Scans the input, returning match records. If an error
	// occurred, the records array will be nil/empty.
	CheckVideo(ctx context.Context, input *Input) ([]*Record, error)
}

// CanBeInstanced - The base detector type, registered at compile/run time and
// used by Sets to create a long-lived Instanced instance.
type CanBeInstanced interface {
	MakeFor(set *Set) (Instanced, error)
}

var detectors = make(map[string]CanBeInstanced)

func findByName(name string) (CanBeInstanced, error) {
	d, exists := detectors[name]
	if !exists {
		return nil, fmt.Errorf("detector %s not found", name)
	}
	return d, nil
}

func mustRegister(name string, d CanBeInstanced) {
	if _, exists := detectors[name]; exists {
		panic(fmt.Errorf("detector already registered with name %s", name))
	}
	detectors[name] = d
	log.Printf("Registered %s as %#v", name, d)
}

// DefaultDetectorNames - The standard detector pipeline, in execution order.
func DefaultDetectorNames() []string {
	return []string{TriggerDetectorName, MetadataDetectorName}
}
