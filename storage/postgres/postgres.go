// Package postgres is the remote Backend implementation: plain per-table
// CRUD over sqlx with a LISTEN/NOTIFY change feed standing in for the hosted
// service's realtime channel.
package postgres

import (
	"context"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/volatiletech/null/v8"

	"github.com/devtna/jlsfinder/core"
	"github.com/devtna/jlsfinder/core/review"
	"github.com/devtna/jlsfinder/core/school"
	"github.com/devtna/jlsfinder/core/user"
	appfs "github.com/devtna/jlsfinder/fs"
	"github.com/devtna/jlsfinder/storage"
)

type Backend struct {
	db  *sqlx.DB
	dsn string
	log core.Logger

	listener *pq.Listener
	events   chan storage.Event
}

var _ storage.Backend = (*Backend)(nil)

// DSN builds the connection string from the configured endpoint URL and
// access key. The key is applied as the connection password.
func DSN(conf *core.Config) (string, error) {
	u, err := url.Parse(conf.Backend.URL)
	if err != nil {
		return "", errors.Wrap(err, "parsing backend URL")
	}

	usr := "jlsfinder"
	if u.User != nil && u.User.Username() != "" {
		usr = u.User.Username()
	}
	u.User = url.UserPassword(usr, conf.Backend.Key)

	sslMode := "require"
	if conf.Backend.DisableTLS {
		sslMode = "disable"
	}
	q := u.Query()
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func Open(conf *core.Config, log core.Logger) (*Backend, error) {
	dsn, err := DSN(conf)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		return nil, err
	}
	return &Backend{db: db, dsn: dsn, log: log}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// DB exposes the underlying handle for administrative tooling.
func (b *Backend) DB() *sqlx.DB { return b.db }

// Migrate brings the schema up to date using the embedded migrations.
func (b *Backend) Migrate() error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := goose.Up(b.db.DB, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func (b *Backend) FetchSchools(ctx context.Context) ([]school.School, error) {
	var rows []schoolRow
	if err := b.db.SelectContext(ctx, &rows, `SELECT * FROM schools`); err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	schools := make([]school.School, 0, len(rows))
	for _, r := range rows {
		schools = append(schools, r.entity())
	}
	return schools, nil
}

func (b *Backend) InsertSchool(ctx context.Context, s school.School) error {
	_, err := b.db.NamedExecContext(ctx, `
		INSERT INTO schools (id, name, address, city, phone, google_maps_url, lat, lng,
		                     schedule, course_types, tokutei_courses, images, description)
		VALUES (:id, :name, :address, :city, :phone, :google_maps_url, :lat, :lng,
		        :schedule, :course_types, :tokutei_courses, :images, :description)`,
		newSchoolRow(s))
	return errors.Wrap(err, "inserting school")
}

func (b *Backend) UpdateSchool(ctx context.Context, s school.School) error {
	_, err := b.db.NamedExecContext(ctx, `
		UPDATE schools
		SET name = :name, address = :address, city = :city, phone = :phone,
		    google_maps_url = :google_maps_url, lat = :lat, lng = :lng,
		    schedule = :schedule, course_types = :course_types,
		    tokutei_courses = :tokutei_courses, images = :images, description = :description
		WHERE id = :id`,
		newSchoolRow(s))
	return errors.Wrap(err, "updating school")
}

func (b *Backend) DeleteSchool(ctx context.Context, id string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	return errors.Wrap(err, "deleting school")
}

func (b *Backend) FetchUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := b.db.SelectContext(ctx, &rows, `SELECT * FROM users`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.entity())
	}
	return users, nil
}

func (b *Backend) InsertUser(ctx context.Context, u user.User) error {
	_, err := b.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, password, role, username, avatar_url, created_at)
		VALUES (:id, :email, :password, :role, :username, :avatar_url, :created_at)`,
		newUserRow(u))
	return errors.Wrap(err, "inserting user")
}

func (b *Backend) UpdateUser(ctx context.Context, u user.User) error {
	_, err := b.db.NamedExecContext(ctx, `
		UPDATE users
		SET email = :email, password = :password, role = :role,
		    username = :username, avatar_url = :avatar_url, created_at = :created_at
		WHERE id = :id`,
		newUserRow(u))
	return errors.Wrap(err, "updating user")
}

func (b *Backend) DeleteUser(ctx context.Context, id string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return errors.Wrap(err, "deleting user")
}

func (b *Backend) FetchReviews(ctx context.Context) ([]review.Review, error) {
	var rows []reviewRow
	if err := b.db.SelectContext(ctx, &rows, `SELECT * FROM reviews`); err != nil {
		return nil, errors.Wrap(err, "querying reviews")
	}
	reviews := make([]review.Review, 0, len(rows))
	for _, r := range rows {
		reviews = append(reviews, r.entity())
	}
	return reviews, nil
}

func (b *Backend) InsertReview(ctx context.Context, r review.Review) error {
	_, err := b.db.NamedExecContext(ctx, `
		INSERT INTO reviews (id, school_id, user_id, user_name, rating, comment, created_at)
		VALUES (:id, :school_id, :user_id, :user_name, :rating, :comment, :created_at)`,
		newReviewRow(r))
	return errors.Wrap(err, "inserting review")
}

func (b *Backend) DeleteReview(ctx context.Context, id string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return errors.Wrap(err, "deleting review")
}

// Seed bulk-upserts the bundled collections, one row at a time; the first
// error per collection aborts that collection but not the others.
func (b *Backend) Seed(ctx context.Context, schools []school.School, users []user.User, reviews []review.Review) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, s := range schools {
		if _, err := b.db.NamedExecContext(ctx, upsertSchoolQuery, newSchoolRow(s)); err != nil {
			keep(errors.Wrap(err, "seeding schools"))
			break
		}
	}
	for _, u := range users {
		if _, err := b.db.NamedExecContext(ctx, upsertUserQuery, newUserRow(u)); err != nil {
			keep(errors.Wrap(err, "seeding users"))
			break
		}
	}
	for _, r := range reviews {
		if _, err := b.db.NamedExecContext(ctx, upsertReviewQuery, newReviewRow(r)); err != nil {
			keep(errors.Wrap(err, "seeding reviews"))
			break
		}
	}
	return firstErr
}

func (b *Backend) Close() error {
	if b.listener != nil {
		_ = b.listener.Close()
	}
	return b.db.Close()
}

const (
	upsertSchoolQuery = `
		INSERT INTO schools (id, name, address, city, phone, google_maps_url, lat, lng,
		                     schedule, course_types, tokutei_courses, images, description)
		VALUES (:id, :name, :address, :city, :phone, :google_maps_url, :lat, :lng,
		        :schedule, :course_types, :tokutei_courses, :images, :description)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, address = EXCLUDED.address, city = EXCLUDED.city,
		    phone = EXCLUDED.phone, google_maps_url = EXCLUDED.google_maps_url,
		    lat = EXCLUDED.lat, lng = EXCLUDED.lng, schedule = EXCLUDED.schedule,
		    course_types = EXCLUDED.course_types, tokutei_courses = EXCLUDED.tokutei_courses,
		    images = EXCLUDED.images, description = EXCLUDED.description`

	upsertUserQuery = `
		INSERT INTO users (id, email, password, role, username, avatar_url, created_at)
		VALUES (:id, :email, :password, :role, :username, :avatar_url, :created_at)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, password = EXCLUDED.password, role = EXCLUDED.role,
		    username = EXCLUDED.username, avatar_url = EXCLUDED.avatar_url,
		    created_at = EXCLUDED.created_at`

	upsertReviewQuery = `
		INSERT INTO reviews (id, school_id, user_id, user_name, rating, comment, created_at)
		VALUES (:id, :school_id, :user_id, :user_name, :rating, :comment, :created_at)
		ON CONFLICT (id) DO UPDATE
		SET school_id = EXCLUDED.school_id, user_id = EXCLUDED.user_id,
		    user_name = EXCLUDED.user_name, rating = EXCLUDED.rating,
		    comment = EXCLUDED.comment, created_at = EXCLUDED.created_at`
)

// null helpers

func nullFloat(p *float64) null.Float64 {
	if p == nil {
		return null.Float64{}
	}
	return null.Float64From(*p)
}
