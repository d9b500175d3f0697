package main

import (
	"time"

	"github.com/beautifulplanet/safetyserv/analysis"
	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/queue"
	"github.com/beautifulplanet/safetyserv/storage"
)

func setupQueue(instanceConfig *config.InstanceConfig, engine *analysis.Engine, storage storage.PersistentStorage) (*queue.Pool, error) {
	poolConfig := &queue.PoolConfig{
		ConcurrentPools: instanceConfig.AnalysisPoolCount,
		SizePerPool:     instanceConfig.AnalysisPoolSize,
		AnalysisTimeout: time.Duration(instanceConfig.AnalysisTimeoutSecs) * time.Second,
	}
	return queue.NewPool(poolConfig, engine, storage)
}
