package storage

import (
	"autoparts-bot/internal/config"
	"autoparts-bot/pkg/redis"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Part is one requested item inside an order.
type Part struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	PhotoID string `json:"photo_id,omitempty"`
}

// Order is a completed, immutable parts request.
type Order struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	City         string    `db:"city"`
	CarBrand     string    `db:"car_brand"`
	CarModel     string    `db:"car_model"`
	CarYear      int       `db:"car_year"`
	VINSkipped   bool      `db:"vin_skipped"`
	VINText      string    `db:"vin_text"`
	VINPhotoID   string    `db:"vin_photo_id"`
	EngineVolume string    `db:"engine_volume"`
	FuelType     string    `db:"fuel_type"`
	Parts        []Part    `db:"-"`
	ContactName  string    `db:"contact_name"`
	ContactPhone string    `db:"contact_phone"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

// orderRow is the database shape of Order: parts serialized as JSONB.
type orderRow struct {
	Order
	PartsRaw []byte `db:"parts"`
}

func (r *orderRow) toOrder() (Order, error) {
	order := r.Order
	if len(r.PartsRaw) > 0 {
		if err := json.Unmarshal(r.PartsRaw, &order.Parts); err != nil {
			return Order{}, fmt.Errorf("failed to decode order parts: %w", err)
		}
	}
	return order, nil
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// SaveOrder persists a completed order. The order id is generated by the caller
// from the submission timestamp.
func (s *PostgresStorage) SaveOrder(ctx context.Context, order Order) (int64, error) {
	partsData, err := json.Marshal(order.Parts)
	if err != nil {
		return 0, fmt.Errorf("failed to encode order parts: %w", err)
	}

	const query = `
        INSERT INTO orders (
            id, user_id, city, car_brand, car_model, car_year,
            vin_skipped, vin_text, vin_photo_id, engine_volume, fuel_type,
            parts, contact_name, contact_phone, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id
    `

	var orderID int64
	err = s.db.QueryRowContext(ctx, query,
		order.ID,
		order.UserID,
		order.City,
		order.CarBrand,
		order.CarModel,
		order.CarYear,
		order.VINSkipped,
		order.VINText,
		order.VINPhotoID,
		order.EngineVolume,
		order.FuelType,
		partsData,
		order.ContactName,
		order.ContactPhone,
		order.Status,
		order.CreatedAt,
	).Scan(&orderID)

	if err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	// Invalidate statistics cache
	s.redis.Del(ctx, "order_stats")

	return orderID, nil
}

func (s *PostgresStorage) GetOrderByID(ctx context.Context, orderID int64) (*Order, error) {
	const query = `SELECT * FROM orders WHERE id = $1`

	var row orderRow
	err := s.db.GetContext(ctx, &row, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order, err := row.toOrder()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	const query = `UPDATE orders SET status = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order not found")
	}

	s.redis.Del(ctx, "order_stats")
	return nil
}

type OrderStatistics struct {
	TotalOrders  int
	TodayOrders  int
	WeekOrders   int
	MonthOrders  int
	StatusCounts map[string]int
}

func (s *PostgresStorage) GetOrderStatistics(ctx context.Context) (*OrderStatistics, error) {
	cacheKey := "order_stats"

	// Try Redis first
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil {
		var stats OrderStatistics
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &OrderStatistics{
		StatusCounts: make(map[string]int),
	}

	counts := []struct {
		dest  *int
		query string
	}{
		{&stats.TotalOrders, `SELECT COUNT(*) FROM orders`},
		{&stats.TodayOrders, `SELECT COUNT(*) FROM orders WHERE created_at >= CURRENT_DATE`},
		{&stats.WeekOrders, `SELECT COUNT(*) FROM orders WHERE created_at >= CURRENT_DATE - INTERVAL '7 days'`},
		{&stats.MonthOrders, `SELECT COUNT(*) FROM orders WHERE created_at >= CURRENT_DATE - INTERVAL '30 days'`},
	}
	for _, c := range counts {
		if err := s.db.GetContext(ctx, c.dest, c.query); err != nil {
			return nil, fmt.Errorf("failed to count orders: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) as count
        FROM orders
        GROUP BY status
        `,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.StatusCounts[status] = count
	}

	// Cache the result
	if data, err := json.Marshal(stats); err == nil {
		s.redis.Set(ctx, cacheKey, data, 1*time.Hour)
	}

	return stats, nil
}

// CheckRateLimit reports whether the user exceeded limit actions within window.
func (s *PostgresStorage) CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%d:%s", userID, action)

	count, err := s.redis.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiry if this is the first increment
	if count == 1 {
		if _, err := s.redis.Expire(ctx, key, window); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count > limit, nil
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}
