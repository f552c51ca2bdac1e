package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	mpool "github.com/opst/mealplanner/pkg/conn/db/postgres/pool"
	dbschema "github.com/opst/mealplanner/pkg/domain/schema/db"
	xe "github.com/opst/mealplanner/pkg/errors"
)

// schemaLockKey is a key of advisory lock taken while upgrading.
const schemaLockKey = 0x6d65616c // "meal"

type pgSchema struct {
	pool         mpool.Pool
	repository   string
	pollInterval time.Duration
	logger       *log.Logger
}

type Option func(*pgSchema)

// WithPollInterval sets the interval to check schema version for Context.
func WithPollInterval(d time.Duration) Option {
	return func(s *pgSchema) {
		s.pollInterval = d
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *pgSchema) {
		s.logger = logger
	}
}

// New returns SchemaInterface based on a schema repository.
//
// A schema repository is a directory like
//
//	repository/
//	├── 1/
//	│   ├── 00_first.sql
//	│   └── 01_second.sql
//	└── 2/
//	    └── 00_alter.sql
//
// Each numbered directory is a version. SQL files in it are applied in name order.
func New(pool mpool.Pool, repository string, options ...Option) dbschema.SchemaInterface {
	s := &pgSchema{
		pool:         pool,
		repository:   repository,
		pollInterval: time.Minute,
		logger:       log.New(os.Stderr, "[schema] ", log.LstdFlags),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// versions lists version directories in the repository, ascending.
func (s *pgSchema) versions() ([]int, error) {
	entries, err := os.ReadDir(s.repository)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	ret := []int{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := strconv.Atoi(e.Name())
		if err != nil || v <= 0 {
			continue
		}
		ret = append(ret, v)
	}
	slices.Sort(ret)
	return ret, nil
}

func (s *pgSchema) Latest() (int, error) {
	vs, err := s.versions()
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return 0, nil
	}
	return vs[len(vs)-1], nil
}

func version(ctx context.Context, q mpool.Queryer) (int, error) {
	var v int
	if err := q.QueryRow(
		ctx,
		`
		select case
			when to_regclass('"schema_version"') is null then 0
			else (select coalesce(max("version"), 0) from "schema_version")
		end
		`,
	).Scan(&v); err != nil {
		return 0, xe.Wrap(err)
	}
	return v, nil
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return 0, xe.Wrap(err)
	}
	defer conn.Release()
	return version(ctx, conn)
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	vs, err := s.versions()
	if err != nil {
		return err
	}

	return mpool.InTx(ctx, s.pool, func(tx mpool.Tx) error {
		if _, err := tx.Exec(ctx, `select pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
			return xe.Wrap(err)
		}
		current, err := version(ctx, tx)
		if err != nil {
			return err
		}

		for _, v := range vs {
			if v <= current {
				continue
			}
			files, err := filepath.Glob(filepath.Join(s.repository, strconv.Itoa(v), "*.sql"))
			if err != nil {
				return xe.Wrap(err)
			}
			slices.Sort(files)
			for _, f := range files {
				script, err := os.ReadFile(f)
				if err != nil {
					return xe.Wrap(err)
				}
				if _, err := tx.Exec(ctx, string(script)); err != nil {
					return xe.WrapWithNote(fmt.Sprintf("applying %s", f), err)
				}
			}
			if _, err := tx.Exec(ctx, `insert into "schema_version" ("version") values ($1)`, v); err != nil {
				return xe.Wrap(err)
			}
			s.logger.Printf("schema is upgraded: version %d -> %d", current, v)
			current = v
		}
		return nil
	})
}

func (s *pgSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	check := func() bool {
		latest, err := s.Latest()
		if err != nil {
			s.logger.Printf("cannot read schema repository: %v", err)
			return false
		}
		current, err := s.Version(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Printf("cannot get schema version: %v", err)
			}
			return ctx.Err() == nil
		}
		if current != latest {
			s.logger.Printf("schema version is %d, but %d is required", current, latest)
			return false
		}
		return true
	}

	if !check() {
		cancel()
		return ctx, cancel
	}

	go func() {
		defer cancel()
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !check() {
					return
				}
			}
		}
	}()
	return ctx, cancel
}

type nullSchema struct{}

// Null returns SchemaInterface which does nothing.
//
// Its Context is never closed by schema version.
func Null() dbschema.SchemaInterface {
	return nullSchema{}
}

func (nullSchema) Upgrade(context.Context) error { return nil }

func (nullSchema) Version(context.Context) (int, error) { return 0, nil }

func (nullSchema) Latest() (int, error) { return 0, nil }

func (nullSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
