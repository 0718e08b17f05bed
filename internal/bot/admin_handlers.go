package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var statusTitles = map[string]string{
	"new":        "Новая",
	"processing": "В обработке",
	"completed":  "Завершена",
	"cancelled":  "Отменена",
}

func (b *Bot) isAdmin(chatID int64) bool {
	if chatID == b.cfg.Operator.ChatID {
		return true
	}
	for _, id := range b.cfg.Admin.IDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, cmd string, args []string) {
	if !b.isAdmin(chatID) {
		return
	}

	switch cmd {
	case "stats":
		b.handleOrderStats(ctx, chatID)
	case "export":
		if len(args) == 0 {
			b.handleExportAllOrders(ctx, chatID)
			return
		}
		orderID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			b.sendError(ctx, chatID, "Неверный формат ID заявки")
			return
		}
		b.handleExportSingleOrder(ctx, chatID, orderID)
	case "status":
		if len(args) < 2 {
			b.sendError(ctx, chatID, "Использование: /status <ID_заявки> <новый_статус>")
			return
		}
		b.handleStatusUpdate(ctx, chatID, args[0], args[1])
	}
}

// handleOrderStats shows statistics about orders.
func (b *Bot) handleOrderStats(ctx context.Context, chatID int64) {
	stats, err := b.store.GetOrderStatistics(ctx)
	if err != nil {
		b.logger.Error("Failed to get order statistics", zap.Error(err))
		b.sendError(ctx, chatID, "Ошибка при получении статистики")
		return
	}

	text := fmt.Sprintf(
		"📊 Статистика заявок\n\n"+
			"📌 Всего заявок: %d\n"+
			"📅 За сегодня: %d\n"+
			"📅 За неделю: %d\n"+
			"📅 За месяц: %d\n\n"+
			"📌 По статусам:\n"+
			"🆕 Новые: %d\n"+
			"🔄 В обработке: %d\n"+
			"✅ Завершённые: %d\n"+
			"❌ Отменённые: %d",
		stats.TotalOrders,
		stats.TodayOrders,
		stats.WeekOrders,
		stats.MonthOrders,
		stats.StatusCounts["new"],
		stats.StatusCounts["processing"],
		stats.StatusCounts["completed"],
		stats.StatusCounts["cancelled"],
	)

	b.send(ctx, chatID, text, nil)
}

func (b *Bot) handleStatusUpdate(ctx context.Context, chatID int64, orderIDStr, newStatus string) {
	orderID, err := strconv.ParseInt(orderIDStr, 10, 64)
	if err != nil {
		b.sendError(ctx, chatID, "Неверный формат ID заявки")
		return
	}

	if _, ok := statusTitles[newStatus]; !ok {
		b.sendError(ctx, chatID, "Недопустимый статус. Допустимые значения: new, processing, completed, cancelled")
		return
	}

	if err := b.store.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		b.logger.Error("Failed to update order status",
			zap.Int64("order_id", orderID),
			zap.String("status", newStatus),
			zap.Error(err))
		b.sendError(ctx, chatID, "Ошибка при обновлении статуса")
		return
	}

	b.send(ctx, chatID, fmt.Sprintf("✅ Статус заявки #%d изменён на: %s", orderID, statusTitles[newStatus]), nil)

	// Notify the order's author if possible.
	order, err := b.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return
	}
	userText := fmt.Sprintf("ℹ️ Статус вашей заявки #%d изменён на: %s", orderID, statusTitles[newStatus])
	if err := b.gw.SendText(ctx, order.UserID, userText, nil); err != nil {
		b.logger.Warn("Failed to notify user about status change",
			zap.Int64("user_id", order.UserID),
			zap.Error(err))
	}
}

func (b *Bot) handleExportAllOrders(ctx context.Context, chatID int64) {
	filename := fmt.Sprintf("orders_report_%s", time.Now().Format("20060102"))
	path, err := b.store.ExportAllOrdersToExcel(ctx, filename)
	if err != nil {
		b.logger.Error("Failed to export all orders", zap.Error(err))
		b.sendError(ctx, chatID, "Не удалось выгрузить заявки")
		return
	}

	if err := b.gw.SendDocument(ctx, chatID, path, "📊 Выгрузка всех заявок"); err != nil {
		b.logger.Error("Failed to send Excel file", zap.Error(err))
		b.sendError(ctx, chatID, "Не удалось отправить файл выгрузки")
	}
}

func (b *Bot) handleExportSingleOrder(ctx context.Context, chatID int64, orderID int64) {
	order, err := b.store.GetOrderByID(ctx, orderID)
	if err != nil {
		b.logger.Error("Failed to get order",
			zap.Int64("order_id", orderID),
			zap.Error(err))
		b.sendError(ctx, chatID, "Заявка не найдена")
		return
	}

	path, err := b.store.ExportOrderToExcel(ctx, *order)
	if err != nil {
		b.logger.Error("Failed to export order",
			zap.Int64("order_id", orderID),
			zap.Error(err))
		b.sendError(ctx, chatID, "Не удалось выгрузить заявку")
		return
	}

	caption := fmt.Sprintf("📊 Детали заявки #%d", orderID)
	if err := b.gw.SendDocument(ctx, chatID, path, caption); err != nil {
		b.logger.Error("Failed to send Excel file", zap.Error(err))
		b.sendError(ctx, chatID, "Не удалось отправить файл выгрузки")
	}
}
