package bot

import (
	"context"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	// /start is an idempotent reset: any previous session and its reminders
	// are fully retired before the new ones are created.
	b.reminders.Disarm(chatID)
	b.sessions.Start(chatID)
	b.reminders.Arm(chatID)

	text := `Здравствуйте! 👋 Это бот «АвтоЗапчасти 24/7».

Ответьте на несколько вопросов, и мы подберём нужные детали для вашего автомобиля.

📍 Из какого вы города?`
	b.send(ctx, chatID, text, removeKeyboard())
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	b.reminders.Disarm(chatID)
	b.sessions.Clear(chatID)
	b.send(ctx, chatID, "❌ Оформление заявки отменено. Чтобы начать заново, отправьте /start.", removeKeyboard())
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	helpText := `Доступные команды:
	/start - Начать оформление заявки
	/cancel - Отменить текущую заявку
	/help - Показать эту справку

	Если у вас возникли проблемы, свяжитесь с поддержкой.`
	b.send(ctx, chatID, helpText, nil)
}
