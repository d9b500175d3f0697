package match

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/metrics"
	"github.com/beautifulplanet/safetyserv/signature"
)

type SetConfig struct {
	// EnabledNames are run in order. Empty means DefaultDetectorNames.
	EnabledNames   []string
	Store          *signature.Store
	InstanceConfig *config.InstanceConfig
}

// Set - An instanced detector pipeline bound to one signature store. Safe for
// concurrent use: detectors hold no per-call state.
type Set struct {
	store          *signature.Store
	instanceConfig *config.InstanceConfig
	detectors      []Instanced
}

func NewSet(cnf *SetConfig) (*Set, error) {
	set := &Set{
		store:          cnf.Store,
		instanceConfig: cnf.InstanceConfig,
		detectors:      make([]Instanced, 0),
	}
	names := cnf.EnabledNames
	if len(names) == 0 {
		names = DefaultDetectorNames()
	}
	for _, name := range names {
		d, err := findByName(name)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("error finding detector name: %s", name), err)
		}
		instanced, err := d.MakeFor(set)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("error making detector for: %s", name), err)
		}
		set.detectors = append(set.detectors, instanced)
	}
	return set, nil
}

func (s *Set) Store() *signature.Store {
	return s.store
}

// CheckVideo - Runs all detectors in order and collects their matches. A
// detector error is logged and that detector's results dropped; the remaining
// detectors still run, so one broken rule set can never abort the analysis.
func (s *Set) CheckVideo(ctx context.Context, input *Input) []*Record {
	records := make([]*Record, 0)
	for _, d := range s.detectors {
		t := metrics.StartDetectorTimer(d.Name())
		found, err := d.CheckVideo(ctx, input)
		t.ObserveDuration()
		if err != nil {
			log.Printf("[%s] Non-fatal error in detector %s: %s", input.VideoId, d.Name(), err)
			continue
		}
		for _, r := range found {
			metrics.RecordDetectorMatch(d.Name(), r.Category, string(r.Severity))
		}
		records = append(records, found...)
	}
	return records
}
