package bot

import (
	"autoparts-bot/internal/storage"
	"context"
	"time"
)

// IncomingMessage is one inbound user message, reduced to what the dialogue
// needs: its text and, if present, the id of the attached photo.
type IncomingMessage struct {
	Text    string
	PhotoID string
}

// Gateway is the outbound messaging port. The production implementation talks
// to Telegram; tests substitute a recording fake.
type Gateway interface {
	SendText(ctx context.Context, chatID int64, text string, markup any) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error
	SendDocument(ctx context.Context, chatID int64, path, caption string) error
}

// OrderStore is the sink for completed orders.
type OrderStore interface {
	SaveOrder(ctx context.Context, order storage.Order) (int64, error)
	GetOrderByID(ctx context.Context, orderID int64) (*storage.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	GetOrderStatistics(ctx context.Context) (*storage.OrderStatistics, error)
	ExportOrderToExcel(ctx context.Context, order storage.Order) (string, error)
	ExportAllOrdersToExcel(ctx context.Context, filename string) (string, error)
}

// Limiter throttles inbound messages per user.
type Limiter interface {
	CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error)
}

var (
	_ OrderStore = (*storage.PostgresStorage)(nil)
	_ Limiter    = (*storage.PostgresStorage)(nil)
)
