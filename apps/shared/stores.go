// Package shared wires what the API server and the admin CLI both need.
package shared

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/core/report"
	boltdb "github.com/apper-canvas/insta-studyhub-auto/storage/bolt"
	"github.com/apper-canvas/insta-studyhub-auto/storage/cache"
	"github.com/apper-canvas/insta-studyhub-auto/storage/database"
	dummydb "github.com/apper-canvas/insta-studyhub-auto/storage/database/dummy"
	boiledrepos "github.com/apper-canvas/insta-studyhub-auto/storage/database/sqlboiler"
	sqlxrepos "github.com/apper-canvas/insta-studyhub-auto/storage/database/sqlx"
	"github.com/apper-canvas/insta-studyhub-auto/storage/recordstore"
)

var errUnknownBackend = errors.New("unknown storage backend")

type (
	// Stores holds the record stores of the configured backend.
	Stores struct {
		Courses     course.Repository
		Assignments assignment.Repository
		DB          *sql.DB // only set by the SQL backends

		closers []func() error
	}

	Services struct {
		Course     *course.Service
		Assignment *assignment.Service
		Report     *report.Service
	}
)

// OpenStores opens the record stores of conf.Storage.Backend, behind the Redis cache when enabled.
// `migrate` applies the pending migrations of the SQL backends.
func OpenStores(ctx context.Context, conf *core.Config, logger core.Logger, migrate bool) (*Stores, error) {
	stores := new(Stores)
	if err := stores.open(conf, migrate); err != nil {
		_ = stores.Close()
		return nil, errors.Wrapf(err, "opening %q stores", conf.Storage.Backend)
	}

	if conf.Redis.Enabled {
		client, err := cache.Connect(ctx, conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			_ = stores.Close()
			return nil, errors.Wrap(err, "connecting to redis")
		}
		stores.closers = append(stores.closers, client.Close)

		c := cache.New(client, conf.Redis.TTL, logger)
		stores.Courses = cache.NewCourseRepository(stores.Courses, c)
		stores.Assignments = cache.NewAssignmentRepository(stores.Assignments, c)
	}
	return stores, nil
}

func (s *Stores) open(conf *core.Config, migrate bool) error {
	switch conf.Storage.Backend {
	case core.BackendDummy:
		db, err := dummydb.Open(dummydb.Options{Delay: conf.Storage.FixtureDelay, Fixtures: true})
		if err != nil {
			return err
		}
		s.Courses = dummydb.NewCourseRepository(db)
		s.Assignments = dummydb.NewAssignmentRepository(db)

	case core.BackendPostgres, core.BackendSqlx:
		db, err := openSQL(conf, migrate)
		if err != nil {
			return err
		}
		s.DB = db
		s.closers = append(s.closers, db.Close)

		if conf.Storage.Backend == core.BackendPostgres {
			s.Courses = boiledrepos.NewCourseRepository(db)
			s.Assignments = boiledrepos.NewAssignmentRepository(db)
		} else {
			xdb := sqlxrepos.NewDB(db)
			s.Courses = sqlxrepos.NewCourseRepository(xdb)
			s.Assignments = sqlxrepos.NewAssignmentRepository(xdb)
		}

	case core.BackendBolt:
		db, err := boltdb.Open(conf.Bolt.Path, boltdb.Options{Fixtures: true})
		if err != nil {
			return err
		}
		s.closers = append(s.closers, db.Close)
		s.Courses = boltdb.NewCourseRepository(db)
		s.Assignments = boltdb.NewAssignmentRepository(db)

	case core.BackendRemote:
		client, err := recordstore.NewClient(recordstore.Options{
			BaseURL:   conf.Remote.BaseURL,
			ProjectID: conf.Remote.ProjectID,
			PublicKey: conf.Remote.PublicKey,
			Timeout:   conf.Remote.Timeout,
		})
		if err != nil {
			return err
		}
		s.Courses = recordstore.NewCourseRepository(client)
		s.Assignments = recordstore.NewAssignmentRepository(client)

	default:
		return errUnknownBackend
	}
	return nil
}

func openSQL(conf *core.Config, migrate bool) (*sql.DB, error) {
	if migrate {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = database.Ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if migrate {
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// Close releases the stores' resources, last opened first.
func (s *Stores) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// NewServices builds the domain services over `stores`.
func NewServices(stores *Stores, conf *core.Config) Services {
	courseSvc := course.NewService(stores.Courses)
	assignmentSvc := assignment.NewService(stores.Assignments)
	return Services{
		Course:     courseSvc,
		Assignment: assignmentSvc,
		Report:     report.NewService(courseSvc, assignmentSvc, conf.Grading.UpcomingDays),
	}
}

