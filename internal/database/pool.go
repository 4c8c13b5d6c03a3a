package database

import (
	"sync"

	"inkwell/internal/config"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Opener establishes a database connection.
type Opener func() (*gorm.DB, error)

// Pool is a connect-on-first-use holder for the shared GORM handle.
// Concurrent callers arriving before the connection exists all await the same
// in-flight attempt instead of racing to open duplicates. A failed attempt is
// not memoized; the next caller retries.
type Pool struct {
	open  Opener
	group singleflight.Group

	mu sync.RWMutex
	db *gorm.DB
}

// NewPool returns a Pool that connects using the application configuration.
func NewPool(cfg *config.Config) *Pool {
	return &Pool{open: func() (*gorm.DB, error) {
		return Connect(cfg)
	}}
}

// NewPoolWithOpener returns a Pool with a custom opener. Used by tests and
// tooling that connects to something other than the configured Postgres.
func NewPoolWithOpener(open Opener) *Pool {
	return &Pool{open: open}
}

// Get returns the shared handle, dialing on first use.
func (p *Pool) Get() (*gorm.DB, error) {
	p.mu.RLock()
	db := p.db
	p.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := p.group.Do("connect", func() (any, error) {
		p.mu.RLock()
		existing := p.db
		p.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		db, err := p.open()
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.db = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

// Close releases the underlying connection if one was established.
func (p *Pool) Close() error {
	p.mu.Lock()
	db := p.db
	p.db = nil
	p.mu.Unlock()

	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
