package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "postgres" driver.
	_ "github.com/lib/pq"

	"giftdrip/internal/providers"
	"giftdrip/internal/structures"
)

// PostgresRepository implements Repository on top of database/sql with
// the lib/pq driver.
type PostgresRepository struct {
	db     *sql.DB
	logger providers.Logger
}

func NewPostgresRepository(conf *structures.Config, logger providers.Logger) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", conf.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	maxOpen := conf.Database.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := conf.Database.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetime := conf.Database.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	logger.Infof(providers.TypeStore, "Connected to postgres (maxOpen=%d, maxIdle=%d)", maxOpen, maxIdle)
	return newPostgresRepository(db, logger), nil
}

func newPostgresRepository(db *sql.DB, logger providers.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

const giftColumns = `id, slug, to_char(start_date, 'YYYY-MM-DD'), unlock_hour, title`

func (r *PostgresRepository) GetGiftBySlug(ctx context.Context, slug string) (*Gift, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+giftColumns+` FROM gift_settings WHERE slug = $1`, slug)
	return scanGift(row)
}

func (r *PostgresRepository) GetGiftByID(ctx context.Context, id string) (*Gift, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+giftColumns+` FROM gift_settings WHERE id = $1`, id)
	return scanGift(row)
}

func scanGift(row *sql.Row) (*Gift, error) {
	var g Gift
	err := row.Scan(&g.ID, &g.Slug, &g.StartDate, &g.UnlockHour, &g.Title)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PostgresRepository) ListUnlockedNotes(ctx context.Context, giftID string, maxDay int) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, gift_id, day_index, body, image_url
		 FROM gift_notes
		 WHERE gift_id = $1 AND day_index <= $2
		 ORDER BY day_index DESC`, giftID, maxDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var imageURL sql.NullString
		if err := rows.Scan(&n.ID, &n.GiftID, &n.DayIndex, &n.Body, &imageURL); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			n.ImageURL = &imageURL.String
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *PostgresRepository) ListEnabledSubscriptions(ctx context.Context) ([]PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, gift_id, endpoint, p256dh, auth, timezone,
		        notify_hour, notify_minute, enabled,
		        to_char(last_notified_on, 'YYYY-MM-DD'), last_notified_at
		 FROM gift_push_subscriptions
		 WHERE enabled = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []PushSubscription
	for rows.Next() {
		var s PushSubscription
		var lastOn sql.NullString
		var lastAt sql.NullTime
		err := rows.Scan(&s.ID, &s.GiftID, &s.Endpoint, &s.P256dh, &s.Auth, &s.Timezone,
			&s.NotifyHour, &s.NotifyMinute, &s.Enabled, &lastOn, &lastAt)
		if err != nil {
			return nil, err
		}
		if lastOn.Valid {
			s.LastNotifiedOn = lastOn.String
		}
		if lastAt.Valid {
			t := lastAt.Time
			s.LastNotifiedAt = &t
		}
		// Malformed rows are dropped here, not propagated into the
		// dispatch cycle.
		if err := s.Validate(); err != nil {
			r.logger.Warnf(providers.TypeStore, "Skipping malformed subscription %q: %s", s.ID, err)
			continue
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *PostgresRepository) UpsertSubscription(ctx context.Context, sub PushSubscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO gift_push_subscriptions
		   (gift_id, endpoint, p256dh, auth, timezone, notify_hour, notify_minute, enabled)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		 ON CONFLICT (endpoint) DO UPDATE SET
		   gift_id = EXCLUDED.gift_id,
		   p256dh = EXCLUDED.p256dh,
		   auth = EXCLUDED.auth,
		   timezone = EXCLUDED.timezone,
		   notify_hour = EXCLUDED.notify_hour,
		   notify_minute = EXCLUDED.notify_minute,
		   enabled = true,
		   updated_at = now()`,
		sub.GiftID, sub.Endpoint, sub.P256dh, sub.Auth, sub.Timezone, sub.NotifyHour, sub.NotifyMinute)
	return err
}

func (r *PostgresRepository) DeleteSubscription(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM gift_push_subscriptions WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM gift_push_subscriptions WHERE endpoint = $1`, endpoint)
	return err
}

func (r *PostgresRepository) MarkNotified(ctx context.Context, subscriptionID, localDate string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE gift_push_subscriptions
		 SET last_notified_on = $2, last_notified_at = $3, updated_at = now()
		 WHERE id = $1`,
		subscriptionID, localDate, at)
	return err
}

func (r *PostgresRepository) InsertEvent(ctx context.Context, event Event) error {
	// The payload column is jsonb; a []byte parameter would be
	// text-encoded as bytea hex by the driver, which postgres rejects
	// as json input.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO gift_events (gift_id, event_type, payload) VALUES ($1, $2, $3)`,
		event.GiftID, event.EventType, string(event.Payload))
	return err
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
