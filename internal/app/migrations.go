package app

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/database"
	log "github.com/sirupsen/logrus"
)

type migrateFunc func(cfg config.Database) error

// retryMigrations runs migrate until it succeeds, fails for a reason other
// than an unreachable database, or ctx is done.
func retryMigrations(ctx context.Context, cfg config.Database, migrate migrateFunc, b backoff.BackOff) error {
	op := func() error {
		err := migrate(cfg)
		if err != nil && !database.IsUnavailable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Warnf("database still unreachable, retrying migrations in %s: %v", next, err)
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}

func migrationBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}
