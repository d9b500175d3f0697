package storage

import (
	"context"
	"encoding/json"
)

type StoredAnalysis struct {
	VideoId string `json:"video_id"`
	// Result is the JSON-encoded analysis result. Storage doesn't decode it;
	// the queue layer owns the result type.
	Result            json.RawMessage `json:"result"`
	UpdatedAtMillis   int64           `json:"updated_at"`
	SignatureRevision string          `json:"signature_revision"`
}

type PersistentStorage interface {
	Close() error

	// GetAnalysis - returns the stored analysis for the video, or nil if the
	// video has never been analyzed.
	GetAnalysis(ctx context.Context, videoId string) (*StoredAnalysis, error)
	UpsertAnalysis(ctx context.Context, record *StoredAnalysis) error
	DeleteAnalysis(ctx context.Context, videoId string) error

	// AddQuotaUsage - adds units to the given day's upstream API usage and
	// returns the day's new total. Days are "YYYY-MM-DD" in UTC.
	AddQuotaUsage(ctx context.Context, day string, units int) (int, error)
	GetQuotaUsage(ctx context.Context, day string) (int, error)
}
