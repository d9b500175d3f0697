package main

import (
	"errors"
	"time"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/storage"
)

func setupStorage(instanceConfig *config.InstanceConfig) (storage.PersistentStorage, error) {
	dbConfig := &storage.PostgresStorageConfig{
		RWDatabase: &storage.PostgresStorageConnectionConfig{
			Uri:          instanceConfig.Database,
			MaxOpenConns: instanceConfig.DatabaseMaxOpenConns,
			MaxIdleConns: instanceConfig.DatabaseMaxIdleConns,
		},
		MigrationsPath:   instanceConfig.DatabaseMigrationsDir,
		AnalysisCacheTtl: time.Duration(instanceConfig.ResultCacheMinutes) * time.Minute,
	}
	psqlDb, err := storage.NewPostgresStorage(dbConfig)
	if err != nil {
		return nil, errors.Join(errors.New("NewPostgresStorage: failed create"), err)
	}
	return psqlDb, nil
}
