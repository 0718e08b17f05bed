package bot

import (
	"autoparts-bot/internal/config"
	"autoparts-bot/internal/reminder"
	"autoparts-bot/internal/storage"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

const (
	testChatID     int64 = 42
	testOperatorID int64 = 999
)

type sentText struct {
	chatID int64
	text   string
}

type sentPhoto struct {
	chatID  int64
	fileID  string
	caption string
}

// fakeGateway records outbound messages instead of talking to Telegram.
type fakeGateway struct {
	mu     sync.Mutex
	texts  []sentText
	photos []sentPhoto
	docs   []sentText
}

func (g *fakeGateway) SendText(_ context.Context, chatID int64, text string, _ any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.texts = append(g.texts, sentText{chatID: chatID, text: text})
	return nil
}

func (g *fakeGateway) SendPhoto(_ context.Context, chatID int64, fileID, caption string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.photos = append(g.photos, sentPhoto{chatID: chatID, fileID: fileID, caption: caption})
	return nil
}

func (g *fakeGateway) SendDocument(_ context.Context, chatID int64, path, caption string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.docs = append(g.docs, sentText{chatID: chatID, text: path})
	return nil
}

func (g *fakeGateway) lastTextTo(chatID int64) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := len(g.texts) - 1; i >= 0; i-- {
		if g.texts[i].chatID == chatID {
			return g.texts[i].text
		}
	}
	return ""
}

func (g *fakeGateway) textsTo(chatID int64) []sentText {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []sentText
	for _, s := range g.texts {
		if s.chatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

func (g *fakeGateway) photosTo(chatID int64) []sentPhoto {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []sentPhoto
	for _, p := range g.photos {
		if p.chatID == chatID {
			out = append(out, p)
		}
	}
	return out
}

// fakeStore collects saved orders in memory.
type fakeStore struct {
	mu      sync.Mutex
	saved   []storage.Order
	saveErr error
}

func (s *fakeStore) SaveOrder(_ context.Context, order storage.Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.saved = append(s.saved, order)
	return order.ID, nil
}

func (s *fakeStore) GetOrderByID(_ context.Context, orderID int64) (*storage.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].ID == orderID {
			return &s.saved[i], nil
		}
	}
	return nil, errors.New("order not found")
}

func (s *fakeStore) UpdateOrderStatus(_ context.Context, orderID int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.saved {
		if s.saved[i].ID == orderID {
			s.saved[i].Status = status
			return nil
		}
	}
	return errors.New("order not found")
}

func (s *fakeStore) GetOrderStatistics(_ context.Context) (*storage.OrderStatistics, error) {
	return &storage.OrderStatistics{StatusCounts: make(map[string]int)}, nil
}

func (s *fakeStore) ExportOrderToExcel(_ context.Context, _ storage.Order) (string, error) {
	return "", nil
}

func (s *fakeStore) ExportAllOrdersToExcel(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (s *fakeStore) orders() []storage.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.Order(nil), s.saved...)
}

func newTestBot(t *testing.T) (*Bot, *fakeGateway, *fakeStore) {
	t.Helper()

	gw := &fakeGateway{}
	store := &fakeStore{}
	logger := zap.NewNop()

	cfg := &config.Config{
		Operator: config.OperatorConfig{ChatID: testOperatorID},
	}

	b := &Bot{
		gw:       gw,
		logger:   logger,
		sessions: NewSessionStore(),
		store:    store,
		cfg:      cfg,
	}
	// Hour-scale delays so no reminder can fire inside a test run.
	b.reminders = reminder.New(gw, logger, reminder.Defaults(time.Hour, 2*time.Hour, 3*time.Hour))
	b.registerHandlers()

	return b, gw, store
}

func say(b *Bot, text string) {
	b.Dispatch(context.Background(), testChatID, IncomingMessage{Text: text})
}

func sendPhoto(b *Bot, fileID string) {
	b.Dispatch(context.Background(), testChatID, IncomingMessage{PhotoID: fileID})
}

// driveToConfirmation walks the whole happy path up to the summary screen.
func driveToConfirmation(t *testing.T, b *Bot) {
	t.Helper()

	say(b, "/start")
	say(b, "Москва")
	say(b, "Toyota")
	say(b, "Camry")
	say(b, "2015")
	say(b, ButtonSkip)
	say(b, "2.0")
	say(b, "⛽ Бензин")
	say(b, "Фара левая")
	say(b, ButtonPartNoDetails)
	say(b, ButtonPartsDone)
	say(b, "Иван +79161234567")

	sess, ok := b.sessions.Get(testChatID)
	if !ok {
		t.Fatal("expected a live session at the confirmation step")
	}
	if sess.Step != StepConfirmation {
		t.Fatalf("expected step %q, got %q", StepConfirmation, sess.Step)
	}
}

func TestHappyPathSubmitsOrder(t *testing.T) {
	b, gw, store := newTestBot(t)

	driveToConfirmation(t, b)
	say(b, ButtonSubmit)

	orders := store.orders()
	if len(orders) != 1 {
		t.Fatalf("expected 1 saved order, got %d", len(orders))
	}
	order := orders[0]

	if order.UserID != testChatID {
		t.Errorf("UserID = %d, want %d", order.UserID, testChatID)
	}
	if order.City != "Москва" || order.CarBrand != "Toyota" || order.CarModel != "Camry" || order.CarYear != 2015 {
		t.Errorf("vehicle fields = %q %q %q %d", order.City, order.CarBrand, order.CarModel, order.CarYear)
	}
	if !order.VINSkipped || order.VINText != "" || order.VINPhotoID != "" {
		t.Errorf("expected skipped VIN, got skipped=%v text=%q photo=%q",
			order.VINSkipped, order.VINText, order.VINPhotoID)
	}
	if order.EngineVolume != "2.0" || order.FuelType != "⛽ Бензин" {
		t.Errorf("engine = %q %q", order.EngineVolume, order.FuelType)
	}
	if len(order.Parts) != 1 || order.Parts[0].Name != "Фара левая" || order.Parts[0].Details != DefaultPartDetails {
		t.Errorf("unexpected parts: %+v", order.Parts)
	}
	if order.ContactName != "Иван" || order.ContactPhone != "+79161234567" {
		t.Errorf("contact = %q %q", order.ContactName, order.ContactPhone)
	}
	if order.Status != "new" {
		t.Errorf("status = %q, want new", order.Status)
	}

	opTexts := gw.textsTo(testOperatorID)
	if len(opTexts) != 1 {
		t.Fatalf("expected exactly 1 operator notification, got %d", len(opTexts))
	}
	if !strings.Contains(opTexts[0].text, "НОВАЯ ЗАЯВКА") {
		t.Errorf("operator notification missing header: %q", opTexts[0].text)
	}
	if photos := gw.photosTo(testOperatorID); len(photos) != 0 {
		t.Errorf("expected no forwarded photos, got %d", len(photos))
	}

	if _, ok := b.sessions.Get(testChatID); ok {
		t.Error("session should be cleared after submission")
	}
	if b.reminders.Armed(testChatID) {
		t.Error("reminders should be disarmed after submission")
	}
	if !strings.Contains(gw.lastTextTo(testChatID), "отправлена") {
		t.Errorf("missing success message, last = %q", gw.lastTextTo(testChatID))
	}
}

func TestInvalidYearRepromptsWithoutAdvancing(t *testing.T) {
	b, gw, _ := newTestBot(t)

	say(b, "/start")
	say(b, "Москва")
	say(b, "Toyota")
	say(b, "Camry")

	say(b, "далеко в прошлом")
	sess, _ := b.sessions.Get(testChatID)
	if sess.Step != StepCarYear {
		t.Fatalf("step = %q, want %q after rejected year", sess.Step, StepCarYear)
	}
	if sess.Draft.CarYear != 0 {
		t.Errorf("draft year mutated on invalid input: %d", sess.Draft.CarYear)
	}
	if !strings.HasPrefix(gw.lastTextTo(testChatID), "❌") {
		t.Errorf("expected a corrective message, got %q", gw.lastTextTo(testChatID))
	}

	say(b, "2010")
	if sess.Step != StepVINChoice {
		t.Errorf("step = %q, want %q after valid year", sess.Step, StepVINChoice)
	}
	if sess.Draft.CarYear != 2010 {
		t.Errorf("draft year = %d, want 2010", sess.Draft.CarYear)
	}
}

func TestEditCityReturnsToSummary(t *testing.T) {
	b, _, _ := newTestBot(t)

	driveToConfirmation(t, b)

	say(b, ButtonEdit)
	sess, _ := b.sessions.Get(testChatID)
	if sess.Step != StepEditChoice {
		t.Fatalf("step = %q, want %q", sess.Step, StepEditChoice)
	}

	say(b, ButtonEditCity)
	say(b, "Казань")

	if sess.Step != StepConfirmation {
		t.Fatalf("step = %q, want %q after edit", sess.Step, StepConfirmation)
	}
	if sess.Draft.City != "Казань" {
		t.Errorf("city = %q, want Казань", sess.Draft.City)
	}
	// The rest of the draft survives the detour untouched.
	if sess.Draft.CarBrand != "Toyota" || len(sess.Draft.Parts) != 1 || sess.Draft.ContactPhone != "+79161234567" {
		t.Errorf("unrelated draft fields changed: %+v", sess.Draft)
	}
}

func TestMultiplePartsWithDetailsAndPhoto(t *testing.T) {
	b, gw, store := newTestBot(t)

	say(b, "/start")
	say(b, "Омск")
	say(b, "Kia")
	say(b, "Rio")
	say(b, "2019")
	say(b, ButtonVINEnterText)
	say(b, "XWEPC811DB0012345")
	say(b, "1.6")
	say(b, "⛽ Бензин")

	say(b, "Бампер передний")
	say(b, ButtonPartAddDetails)
	say(b, "Оригинал, без парктроников")
	sendPhoto(b, "photo-bumper")

	say(b, ButtonMoreParts)
	say(b, "Фильтр масляный")
	say(b, ButtonPartNoDetails)

	say(b, ButtonPartsDone)
	say(b, "Пётр 89031234567")
	say(b, ButtonSubmit)

	orders := store.orders()
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	parts := orders[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Name != "Бампер передний" || parts[0].Details != "Оригинал, без парктроников" || parts[0].PhotoID != "photo-bumper" {
		t.Errorf("part 1 = %+v", parts[0])
	}
	if parts[1].Name != "Фильтр масляный" || parts[1].Details != DefaultPartDetails || parts[1].PhotoID != "" {
		t.Errorf("part 2 = %+v", parts[1])
	}
	if orders[0].VINText != "XWEPC811DB0012345" {
		t.Errorf("VIN = %q", orders[0].VINText)
	}

	// The only photo attached to a part is forwarded to the operator.
	photos := gw.photosTo(testOperatorID)
	if len(photos) != 1 || photos[0].fileID != "photo-bumper" {
		t.Errorf("forwarded photos = %+v", photos)
	}
}

func TestStartRestartsSession(t *testing.T) {
	b, _, _ := newTestBot(t)

	say(b, "/start")
	say(b, "Тверь")
	say(b, "Lada")

	say(b, "/start")
	sess, ok := b.sessions.Get(testChatID)
	if !ok {
		t.Fatal("expected a session after restart")
	}
	if sess.Step != StepCity {
		t.Errorf("step = %q, want %q", sess.Step, StepCity)
	}
	if sess.Draft.City != "" || sess.Draft.CarBrand != "" {
		t.Errorf("draft should be empty after restart: %+v", sess.Draft)
	}
	if !b.reminders.Armed(testChatID) {
		t.Error("reminders should be armed for the new session")
	}
}

func TestSubmitFailureKeepsDraftForRetry(t *testing.T) {
	b, gw, store := newTestBot(t)

	driveToConfirmation(t, b)

	store.saveErr = errors.New("db down")
	say(b, ButtonSubmit)

	sess, ok := b.sessions.Get(testChatID)
	if !ok {
		t.Fatal("session must survive a failed submission")
	}
	if sess.Step != StepConfirmation {
		t.Errorf("step = %q, want %q", sess.Step, StepConfirmation)
	}
	if gw.lastTextTo(testChatID) != msgSubmitFailed {
		t.Errorf("expected submit failure message, got %q", gw.lastTextTo(testChatID))
	}
	if len(gw.textsTo(testOperatorID)) != 0 {
		t.Error("operator must not be notified when the save failed")
	}

	store.saveErr = nil
	say(b, ButtonSubmit)

	if len(store.orders()) != 1 {
		t.Fatalf("expected 1 order after retry, got %d", len(store.orders()))
	}
	if _, ok := b.sessions.Get(testChatID); ok {
		t.Error("session should be cleared after successful retry")
	}
}

func TestMessageWithoutSessionPromptsStart(t *testing.T) {
	b, gw, _ := newTestBot(t)

	say(b, "привет")
	if gw.lastTextTo(testChatID) != msgNoSession {
		t.Errorf("got %q, want the /start prompt", gw.lastTextTo(testChatID))
	}
}

func TestCancelDropsSessionAndReminders(t *testing.T) {
	b, _, _ := newTestBot(t)

	say(b, "/start")
	say(b, "Сочи")
	say(b, "/cancel")

	if _, ok := b.sessions.Get(testChatID); ok {
		t.Error("session should be gone after /cancel")
	}
	if b.reminders.Armed(testChatID) {
		t.Error("reminders should be disarmed after /cancel")
	}
}

func TestVINTextStepTakesPhotoOverCaption(t *testing.T) {
	b, _, _ := newTestBot(t)

	say(b, "/start")
	say(b, "Москва")
	say(b, "Toyota")
	say(b, "Camry")
	say(b, "2015")
	say(b, ButtonVINEnterText)

	// A photo of the СТС with a caption: the photo wins, the caption is not
	// mistaken for a typed VIN.
	b.Dispatch(context.Background(), testChatID, IncomingMessage{Text: "вот документ", PhotoID: "photo-sts"})

	sess, _ := b.sessions.Get(testChatID)
	if sess.Draft.VINPhotoID != "photo-sts" {
		t.Errorf("VINPhotoID = %q, want photo-sts", sess.Draft.VINPhotoID)
	}
	if sess.Draft.VINText != "" {
		t.Errorf("VINText = %q, want empty", sess.Draft.VINText)
	}
	if sess.Draft.VINSkipped {
		t.Error("VINSkipped must stay false when a photo is provided")
	}
	if sess.Step != StepEngineVolume {
		t.Errorf("step = %q, want %q", sess.Step, StepEngineVolume)
	}
}

func TestOtherVolumeEscapeReprompts(t *testing.T) {
	b, _, _ := newTestBot(t)

	say(b, "/start")
	say(b, "Москва")
	say(b, "Toyota")
	say(b, "Camry")
	say(b, "2015")
	say(b, ButtonSkip)

	say(b, ButtonOtherVolume)
	sess, _ := b.sessions.Get(testChatID)
	if sess.Step != StepEngineVolume {
		t.Fatalf("step = %q, want %q", sess.Step, StepEngineVolume)
	}
	if sess.Draft.EngineVolume != "" {
		t.Errorf("volume must stay empty on the escape button, got %q", sess.Draft.EngineVolume)
	}

	say(b, "4,4")
	if sess.Draft.EngineVolume != "4.4" {
		t.Errorf("volume = %q, want 4.4", sess.Draft.EngineVolume)
	}
	if sess.Step != StepFuelType {
		t.Errorf("step = %q, want %q", sess.Step, StepFuelType)
	}
}
