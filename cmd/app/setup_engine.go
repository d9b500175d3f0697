package main

import (
	"errors"

	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/signature"
)

func setupEngine(instanceConfig *config.InstanceConfig) (*analysis.Engine, error) {
	store, err := signature.NewStore(instanceConfig.SignaturesDir, instanceConfig.CategoriesFile)
	if err != nil {
		return nil, errors.Join(errors.New("NewStore: failed to load signatures"), err)
	}
	return analysis.NewEngine(instanceConfig, store)
}
