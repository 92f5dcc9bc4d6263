package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/persistence"
)

// blob loads and saves one JSON value under a fixed key. A missing key or an
// undecodable value yields the defaults; the latter is logged.
type blob[T any] struct {
	kv       persistence.KeyValueStore
	key      string
	defaults func() T
	logger   *zap.Logger
}

func (b blob[T]) load(ctx context.Context) (T, error) {
	raw, err := b.kv.Get(ctx, b.key)
	if errors.Is(err, persistence.ErrKeyNotFound) {
		return b.defaults(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", b.key, err)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		b.logger.Warn("malformed persisted value, falling back to defaults",
			zap.String("key", b.key), zap.Error(err))
		return b.defaults(), nil
	}
	return value, nil
}

func (b blob[T]) save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	if err := b.kv.Set(ctx, b.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", b.key, err)
	}
	return nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
