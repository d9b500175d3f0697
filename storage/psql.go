package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/DavidHuie/gomigrate"
	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"

	"github.com/beautifulplanet/safetyserv/metrics/dbmetrics"
)

type PostgresStorageConnectionConfig struct {
	Uri          string
	MaxOpenConns int
	MaxIdleConns int
}

type PostgresStorageConfig struct {
	// Read/Write Database connection config
	RWDatabase *PostgresStorageConnectionConfig
	// Readonly Database connection config. If nil, the RW database will be used for RO operations
	RODatabase *PostgresStorageConnectionConfig
	// File path to the directory containing migrations
	MigrationsPath string
	// How long read analyses stay in the in-process cache
	AnalysisCacheTtl time.Duration
}

type PostgresStorage struct {
	db         *sql.DB
	readonlyDb *sql.DB

	analysisGroup *singleflight.Group
	analysisCache *cache.Cache[string, *StoredAnalysis]
	cacheTtl      time.Duration

	analysisSelect *sql.Stmt
	analysisUpsert *sql.Stmt
	analysisDelete *sql.Stmt
	quotaSelect    *sql.Stmt
	quotaUpsert    *sql.Stmt
}

func NewPostgresStorage(config *PostgresStorageConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.RWDatabase.Uri)
	if err != nil {
		return nil, errors.Join(errors.New("failed to open read/write database"), err)
	}
	db.SetMaxOpenConns(config.RWDatabase.MaxOpenConns)
	db.SetMaxIdleConns(config.RWDatabase.MaxIdleConns)

	readonlyDb := db
	if config.RODatabase != nil {
		readonlyDb, err = sql.Open("postgres", config.RODatabase.Uri)
		if err != nil {
			return nil, errors.Join(errors.New("failed to open read-only database"), err)
		}
		readonlyDb.SetMaxOpenConns(config.RODatabase.MaxOpenConns)
		readonlyDb.SetMaxIdleConns(config.RODatabase.MaxIdleConns)
	}

	ttl := config.AnalysisCacheTtl
	if ttl <= 0 {
		ttl = 1 * time.Minute
	}

	s := &PostgresStorage{
		db:            db,
		readonlyDb:    readonlyDb,
		analysisGroup: new(singleflight.Group),
		analysisCache: cache.New[string, *StoredAnalysis](cache.WithJanitorInterval[string, *StoredAnalysis](1 * time.Minute)),
		cacheTtl:      ttl,
	}
	if err = s.prepare(config.MigrationsPath); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to run migrations with path '%s'", config.MigrationsPath), err)
	}
	return s, nil
}

func (s *PostgresStorage) prepare(migrationsDir string) error {
	// Migrate first
	if migrator, err := gomigrate.NewMigratorWithLogger(s.db, gomigrate.Postgres{}, migrationsDir, log.Default()); err != nil {
		return err
	} else {
		if err = migrator.Migrate(); err != nil {
			return err
		}
	}

	// Now set up all the prepared statements
	var err error
	if s.analysisSelect, err = s.readonlyDb.Prepare("SELECT video_id, result, updated_at, signature_revision FROM analyses WHERE video_id = $1"); err != nil {
		return err
	}
	if s.analysisUpsert, err = s.db.Prepare("INSERT INTO analyses (video_id, result, updated_at, signature_revision) VALUES ($1, $2, $3, $4) ON CONFLICT (video_id) DO UPDATE SET result = $2, updated_at = $3, signature_revision = $4;"); err != nil {
		return err
	}
	if s.analysisDelete, err = s.db.Prepare("DELETE FROM analyses WHERE video_id = $1;"); err != nil {
		return err
	}
	if s.quotaSelect, err = s.readonlyDb.Prepare("SELECT units FROM quota_usage WHERE day = $1"); err != nil {
		return err
	}
	if s.quotaUpsert, err = s.db.Prepare("INSERT INTO quota_usage (day, units) VALUES ($1, $2) ON CONFLICT (day) DO UPDATE SET units = quota_usage.units + $2 RETURNING units;"); err != nil {
		return err
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.readonlyDb != s.db {
		if err := s.readonlyDb.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStorage) GetAnalysis(ctx context.Context, videoId string) (*StoredAnalysis, error) {
	t := dbmetrics.StartSelfDatabaseTimer("GetAnalysis")
	defer t.ObserveDuration()

	if cached, ok := s.analysisCache.Get(videoId); ok {
		dbmetrics.RecordAnalysisCacheRequest(true)
		return cached, nil
	}
	dbmetrics.RecordAnalysisCacheRequest(false)

	val, err, _ := s.analysisGroup.Do(videoId, func() (interface{}, error) {
		record := &StoredAnalysis{}
		var encodedResult string
		if err := s.analysisSelect.QueryRowContext(ctx, videoId).Scan(&record.VideoId, &encodedResult, &record.UpdatedAtMillis, &record.SignatureRevision); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		record.Result = json.RawMessage(encodedResult)

		s.analysisCache.Set(videoId, record, cache.WithExpiration(s.cacheTtl))
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	return val.(*StoredAnalysis), nil
}

func (s *PostgresStorage) UpsertAnalysis(ctx context.Context, record *StoredAnalysis) error {
	t := dbmetrics.StartSelfDatabaseTimer("UpsertAnalysis")
	defer t.ObserveDuration()

	_, err := s.analysisUpsert.ExecContext(ctx, record.VideoId, string(record.Result), record.UpdatedAtMillis, record.SignatureRevision)
	if err != nil {
		return err
	}
	s.analysisCache.Set(record.VideoId, record, cache.WithExpiration(s.cacheTtl))
	return nil
}

func (s *PostgresStorage) DeleteAnalysis(ctx context.Context, videoId string) error {
	t := dbmetrics.StartSelfDatabaseTimer("DeleteAnalysis")
	defer t.ObserveDuration()

	_, err := s.analysisDelete.ExecContext(ctx, videoId)
	if err != nil {
		return err
	}
	s.analysisCache.Delete(videoId)
	return nil
}

func (s *PostgresStorage) AddQuotaUsage(ctx context.Context, day string, units int) (int, error) {
	t := dbmetrics.StartSelfDatabaseTimer("AddQuotaUsage")
	defer t.ObserveDuration()

	var total int
	if err := s.quotaUpsert.QueryRowContext(ctx, day, units).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PostgresStorage) GetQuotaUsage(ctx context.Context, day string) (int, error) {
	t := dbmetrics.StartSelfDatabaseTimer("GetQuotaUsage")
	defer t.ObserveDuration()

	var units int
	if err := s.quotaSelect.QueryRowContext(ctx, day).Scan(&units); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return units, nil
}
