package main

import (
	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/api"
	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/queue"
	"github.com/beautifulplanet/safetyserv/storage"
	"github.com/beautifulplanet/safetyserv/tasks"
)

func setupApi(instanceConfig *config.InstanceConfig, storage storage.PersistentStorage, engine *analysis.Engine, pool *queue.Pool) (*api.Api, error) {
	apiConfig := &api.Config{
		ApiKey: instanceConfig.ApiKey,
	}
	quota := tasks.NewQuotaTracker(storage, instanceConfig)
	return api.NewApi(apiConfig, storage, engine, pool, quota)
}
