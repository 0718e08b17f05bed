package bot

import (
	"autoparts-bot/internal/config"
	"autoparts-bot/internal/reminder"
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	gw        Gateway
	logger    *zap.Logger
	sessions  *SessionStore
	reminders *reminder.Scheduler
	store     OrderStore
	limiter   Limiter
	cfg       *config.Config
	mu        sync.Mutex
	handlers  map[string]func(context.Context, int64, IncomingMessage)
}

func New(
	token string,
	store OrderStore,
	limiter Limiter,
	logger *zap.Logger,
	cfg *config.Config,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	gw := NewTelegramGateway(botAPI, logger)

	b := &Bot{
		api:      botAPI,
		gw:       gw,
		logger:   logger,
		sessions: NewSessionStore(),
		store:    store,
		limiter:  limiter,
		cfg:      cfg,
	}
	b.reminders = reminder.New(gw, logger, reminder.Defaults(
		cfg.Reminders.Short,
		cfg.Reminders.Medium,
		cfg.Reminders.Long,
	))

	b.registerHandlers()
	return b, nil
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, IncomingMessage){
		StepCity:           b.handleCity,
		StepCarBrand:       b.handleCarBrand,
		StepCarModel:       b.handleCarModel,
		StepCarYear:        b.handleCarYear,
		StepVINChoice:      b.handleVINChoice,
		StepVINText:        b.handleVINText,
		StepEngineVolume:   b.handleEngineVolume,
		StepFuelType:       b.handleFuelType,
		StepPartName:       b.handlePartName,
		StepPartRefinement: b.handlePartRefinement,
		StepPartSpecifics:  b.handlePartSpecifics,
		StepPartPhoto:      b.handlePartPhoto,
		StepMoreParts:      b.handleMoreParts,
		StepContactInfo:    b.handleContactInfo,
		StepConfirmation:   b.handleConfirmation,
		StepEditChoice:     b.handleEditChoice,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.mu.Lock()
			b.processMessage(ctx, update.Message)
			b.mu.Unlock()
		}
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	in := IncomingMessage{Text: msg.Text}
	if len(msg.Photo) > 0 {
		// Telegram sends several sizes; the last one is the largest.
		in.PhotoID = msg.Photo[len(msg.Photo)-1].FileID
		if in.Text == "" {
			in.Text = msg.Caption
		}
	}
	b.Dispatch(ctx, msg.Chat.ID, in)
}

// Dispatch routes one inbound message: commands first, then the handler for
// the chat's current step. Unhandled panics are contained here so a single
// bad update can never take the poller down.
func (b *Bot) Dispatch(ctx context.Context, chatID int64, in IncomingMessage) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic while handling update",
				zap.Int64("chat_id", chatID),
				zap.Any("panic", r))
			b.send(ctx, chatID, msgInternalError, removeKeyboard())
		}
	}()

	if b.limiter != nil {
		exceeded, err := b.limiter.CheckRateLimit(ctx, chatID, "message",
			b.cfg.RateLimit.Messages, b.cfg.RateLimit.Window)
		if err != nil {
			b.logger.Warn("Rate limit check failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		} else if exceeded {
			b.send(ctx, chatID, "⏳ Слишком много сообщений. Подождите немного и продолжите.", nil)
			return
		}
	}

	if strings.HasPrefix(in.Text, "/") {
		b.handleCommand(ctx, chatID, in.Text)
		return
	}

	sess, ok := b.sessions.Get(chatID)
	if !ok {
		b.send(ctx, chatID, msgNoSession, removeKeyboard())
		return
	}

	handler, exists := b.handlers[sess.Step]
	if !exists {
		b.logger.Error("No handler for step",
			zap.Int64("chat_id", chatID),
			zap.String("step", sess.Step))
		b.send(ctx, chatID, msgInternalError, removeKeyboard())
		return
	}
	handler(ctx, chatID, in)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, text string) {
	fields := strings.Fields(text)
	command := strings.TrimPrefix(fields[0], "/")
	// Strip the bot mention from group-style commands like /start@somebot.
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}
	args := fields[1:]

	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "cancel":
		b.handleCancel(ctx, chatID)
	case "help":
		b.handleHelp(ctx, chatID)
	case "stats", "export", "status":
		b.handleAdminCommand(ctx, chatID, command, args)
	default:
		b.sendError(ctx, chatID, "Неизвестная команда. Используйте /start, чтобы начать оформление заявки.")
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markup any) {
	if err := b.gw.SendText(ctx, chatID, text, markup); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) sendError(ctx context.Context, chatID int64, text string) {
	b.send(ctx, chatID, "❌ "+text, nil)
}
