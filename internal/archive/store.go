// internal/archive/store.go
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"xmlgen-service/internal/common/database"
	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/common/logger"
	"xmlgen-service/internal/common/metrics"
	"xmlgen-service/internal/generator"
)

const (
	dataKeyPrefix = "zip:"
	nameKeyPrefix = "zipname:"
)

// Store packages generated copies into a zip archive and keeps it in Redis
// under a one-time download id. Archives expire after the configured TTL
// and are deleted on first successful retrieval.
type Store struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

func NewStore(redisClient *database.RedisClient, ttl time.Duration, log logger.Logger) *Store {
	return &Store{redis: redisClient, ttl: ttl, log: log}
}

// Put zips the files and stores the archive, returning the download id.
func (s *Store) Put(ctx context.Context, archiveName string, files []generator.GeneratedFile) (string, error) {
	data, err := buildZip(files)
	if err != nil {
		return "", fmt.Errorf("failed to build archive: %w", err)
	}

	id := uuid.NewString()
	if err := s.redis.Set(ctx, dataKeyPrefix+id, data, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store archive: %w", err)
	}
	if err := s.redis.Set(ctx, nameKeyPrefix+id, archiveName, s.ttl); err != nil {
		_ = s.redis.Del(ctx, dataKeyPrefix+id)
		return "", fmt.Errorf("failed to store archive name: %w", err)
	}

	s.log.Info("archive stored", map[string]interface{}{
		"download_id": id,
		"name":        archiveName,
		"files":       len(files),
		"bytes":       len(data),
		"ttl":         s.ttl.String(),
	})
	return id, nil
}

// Take retrieves an archive by download id and deletes it. A second Take
// with the same id fails: downloads are single-use.
func (s *Store) Take(ctx context.Context, id string) (string, []byte, error) {
	data, err := s.redis.GetBytes(ctx, dataKeyPrefix+id)
	if err != nil {
		metrics.ArchiveDownloads.WithLabelValues("miss").Inc()
		if errors.Is(err, redis.Nil) {
			return "", nil, xmlerrors.NewArchiveNotFoundError(id)
		}
		return "", nil, fmt.Errorf("failed to load archive: %w", err)
	}

	name, err := s.redis.Get(ctx, nameKeyPrefix+id)
	if err != nil {
		name = "generated.zip"
	}

	if err := s.redis.Del(ctx, dataKeyPrefix+id, nameKeyPrefix+id); err != nil {
		s.log.Warn("failed to delete consumed archive", map[string]interface{}{
			"download_id": id,
			"error":       err.Error(),
		})
	}

	metrics.ArchiveDownloads.WithLabelValues("hit").Inc()
	return name, data, nil
}

func buildZip(files []generator.GeneratedFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
