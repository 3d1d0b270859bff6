package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestRetryMigrations(t *testing.T) {
	fast := func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }

	t.Run("should retry until the database is reachable", func(t *testing.T) {
		// given
		calls := 0
		migrate := func(config.Database) error {
			calls++
			if calls < 3 {
				return fmt.Errorf("%w: connection refused", database.ErrUnavailable)
			}
			return nil
		}

		// when
		err := retryMigrations(context.Background(), config.Database{}, migrate, fast())

		// then
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop on a failing migration", func(t *testing.T) {
		calls := 0
		dirty := errors.New("Dirty database version 1. Fix and force version.")
		migrate := func(config.Database) error {
			calls++
			return dirty
		}

		err := retryMigrations(context.Background(), config.Database{}, migrate, fast())

		assert.ErrorIs(t, err, dirty)
		assert.Equal(t, 1, calls)
	})

	t.Run("should give up when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		migrate := func(config.Database) error {
			cancel()
			return database.ErrUnavailable
		}

		err := retryMigrations(ctx, config.Database{}, migrate, fast())

		assert.Error(t, err)
	})
}
