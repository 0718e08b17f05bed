package reminder

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sender delivers a reminder text to a chat. Satisfied by the bot gateway.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, markup any) error
}

// Delay is one scheduled nudge: a fixed offset from session start and the
// message sent when it fires.
type Delay struct {
	After time.Duration
	Text  string
}

// Defaults returns the standard reminder ladder for the given offsets.
func Defaults(short, medium, long time.Duration) []Delay {
	return []Delay{
		{After: short, Text: "⏰ Вы не закончили оформление заявки на автозапчасти. Продолжить можно прямо сейчас — это займёт пару минут!"},
		{After: medium, Text: "🔔 Ваша заявка на автозапчасти всё ещё ждёт вас. Ответьте на следующий вопрос, и мы подберём детали."},
		{After: long, Text: "📋 Напоминаем: заявка на автозапчасти не отправлена. Завершите оформление или начните заново командой /start."},
	}
}

type entry struct {
	timers []*time.Timer
}

// Scheduler keeps one set of pending reminder timers per chat. A set is armed
// when a session starts and retired when the session completes, restarts or is
// cancelled. A timer that fires after its set was retired is a no-op.
type Scheduler struct {
	mu     sync.Mutex
	sender Sender
	logger *zap.Logger
	delays []Delay
	armed  map[int64]*entry
}

func New(sender Sender, logger *zap.Logger, delays []Delay) *Scheduler {
	return &Scheduler{
		sender: sender,
		logger: logger,
		delays: delays,
		armed:  make(map[int64]*entry),
	}
}

// Arm schedules the full reminder set for a chat, first retiring any set left
// over from a superseded session.
func (s *Scheduler) Arm(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.retireLocked(chatID)

	e := &entry{}
	for _, d := range s.delays {
		d := d
		e.timers = append(e.timers, time.AfterFunc(d.After, func() {
			s.fire(chatID, e, d.Text)
		}))
	}
	s.armed[chatID] = e

	s.logger.Debug("Reminders armed",
		zap.Int64("chat_id", chatID),
		zap.Int("count", len(e.timers)))
}

// Disarm cancels the chat's pending reminders. Cancellation is best effort: a
// timer whose callback already started will still run its armed check and no-op.
func (s *Scheduler) Disarm(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retireLocked(chatID)
}

// Armed reports whether the chat currently has a pending reminder set.
func (s *Scheduler) Armed(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.armed[chatID]
	return ok
}

func (s *Scheduler) retireLocked(chatID int64) {
	e, ok := s.armed[chatID]
	if !ok {
		return
	}
	for _, t := range e.timers {
		t.Stop()
	}
	delete(s.armed, chatID)

	s.logger.Debug("Reminders disarmed", zap.Int64("chat_id", chatID))
}

func (s *Scheduler) fire(chatID int64, e *entry, text string) {
	s.mu.Lock()
	current, ok := s.armed[chatID]
	s.mu.Unlock()

	// The set this timer belongs to must still be the armed one: a reminder
	// from a retired session is silently dropped.
	if !ok || current != e {
		return
	}

	if err := s.sender.SendText(context.Background(), chatID, text, nil); err != nil {
		s.logger.Error("Failed to send reminder",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
