package bot

import (
	"autoparts-bot/internal/storage"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

func (b *Bot) handleContactInfo(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	name, phone, err := ParseContact(in.Text)
	if err != nil {
		b.sendError(ctx, chatID, msgContactFormat)
		return
	}

	sess.Draft.ContactName = name
	sess.Draft.ContactPhone = phone
	sess.Editing = false
	b.showSummary(ctx, chatID, sess)
}

func (b *Bot) showSummary(ctx context.Context, chatID int64, sess *Session) {
	sess.Step = StepConfirmation
	b.send(ctx, chatID, FormatDraftSummary(sess.Draft), confirmationKeyboard())
}

func (b *Bot) handleConfirmation(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	switch in.Text {
	case ButtonSubmit:
		b.submitOrder(ctx, chatID, sess)
	case ButtonEdit:
		sess.Step = StepEditChoice
		b.send(ctx, chatID, "Что нужно исправить?", editKeyboard())
	default:
		b.sendError(ctx, chatID, msgUseButtons)
	}
}

func (b *Bot) handleEditChoice(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	switch in.Text {
	case ButtonEditCity:
		sess.Editing = true
		sess.Step = StepCity
		b.send(ctx, chatID, "📍 Введите город:", removeKeyboard())
	case ButtonEditBrand:
		sess.Editing = true
		sess.Step = StepCarBrand
		b.send(ctx, chatID, "🚗 Введите марку автомобиля:", removeKeyboard())
	case ButtonEditModel:
		sess.Editing = true
		sess.Step = StepCarModel
		b.send(ctx, chatID, "🚙 Введите модель автомобиля:", removeKeyboard())
	case ButtonEditYear:
		sess.Editing = true
		sess.Step = StepCarYear
		b.send(ctx, chatID, "📅 Введите год выпуска:", removeKeyboard())
	case ButtonEditVIN:
		// Re-entering the VIN also re-collects the engine block: the old
		// values would no longer be trustworthy together.
		sess.Editing = true
		sess.Draft.VINText = ""
		sess.Draft.VINPhotoID = ""
		sess.Draft.VINSkipped = false
		sess.Draft.EngineVolume = ""
		sess.Draft.FuelType = ""
		b.askVIN(ctx, chatID, sess)
	case ButtonEditParts:
		sess.Editing = true
		sess.Draft.Parts = nil
		sess.Draft.CurrentPart = nil
		b.askPartName(ctx, chatID, sess)
	case ButtonEditContact:
		sess.Editing = true
		sess.Step = StepContactInfo
		b.send(ctx, chatID, "👤 "+msgContactFormat, removeKeyboard())
	case ButtonBackToEdit:
		b.showSummary(ctx, chatID, sess)
	default:
		b.sendError(ctx, chatID, "Выберите поле на клавиатуре")
	}
}

func (b *Bot) submitOrder(ctx context.Context, chatID int64, sess *Session) {
	now := time.Now()
	d := sess.Draft
	order := storage.Order{
		ID:           now.Unix(),
		UserID:       chatID,
		City:         d.City,
		CarBrand:     d.CarBrand,
		CarModel:     d.CarModel,
		CarYear:      d.CarYear,
		VINSkipped:   d.VINSkipped,
		VINText:      d.VINText,
		VINPhotoID:   d.VINPhotoID,
		EngineVolume: d.EngineVolume,
		FuelType:     d.FuelType,
		Parts:        d.Parts,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		Status:       "new",
		CreatedAt:    now,
	}

	// The draft is kept at the confirmation step on either failure below, so
	// the user can retry without re-entering everything.
	if _, err := b.store.SaveOrder(ctx, order); err != nil {
		b.logger.Error("Failed to save order",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.send(ctx, chatID, msgSubmitFailed, confirmationKeyboard())
		return
	}

	if err := b.gw.SendText(ctx, b.cfg.Operator.ChatID, FormatOperatorNotification(order), nil); err != nil {
		b.logger.Error("Failed to notify operator",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		b.send(ctx, chatID, msgSubmitFailed, confirmationKeyboard())
		return
	}

	b.forwardOrderMedia(ctx, order)
	b.exportOrderForAdmins(ctx, order)

	b.reminders.Disarm(chatID)
	b.sessions.Clear(chatID)

	b.send(ctx, chatID, fmt.Sprintf(
		"✅ Заявка #%d отправлена!\n\nМы свяжемся с вами в ближайшее время.", order.ID),
		removeKeyboard())
}

// forwardOrderMedia sends the VIN photo and per-part photos to the operator.
// Failures here are logged only: the order itself is already delivered.
func (b *Bot) forwardOrderMedia(ctx context.Context, order storage.Order) {
	operatorID := b.cfg.Operator.ChatID

	if order.VINPhotoID != "" {
		caption := fmt.Sprintf("VIN/СТС к заявке #%d", order.ID)
		if err := b.gw.SendPhoto(ctx, operatorID, order.VINPhotoID, caption); err != nil {
			b.logger.Warn("Failed to forward VIN photo",
				zap.Int64("order_id", order.ID),
				zap.Error(err))
		}
	}

	for i, part := range order.Parts {
		if part.PhotoID == "" {
			continue
		}
		caption := fmt.Sprintf("Фото детали %d (%s) к заявке #%d", i+1, part.Name, order.ID)
		if err := b.gw.SendPhoto(ctx, operatorID, part.PhotoID, caption); err != nil {
			b.logger.Warn("Failed to forward part photo",
				zap.Int64("order_id", order.ID),
				zap.Int("part", i+1),
				zap.Error(err))
		}
	}
}

func (b *Bot) exportOrderForAdmins(ctx context.Context, order storage.Order) {
	if len(b.cfg.Admin.IDs) == 0 {
		return
	}

	path, err := b.store.ExportOrderToExcel(ctx, order)
	if err != nil {
		b.logger.Error("Failed to export order to Excel",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		return
	}
	if path == "" {
		return
	}

	caption := fmt.Sprintf("📊 Детали заявки #%d", order.ID)
	for _, adminID := range b.cfg.Admin.IDs {
		if err := b.gw.SendDocument(ctx, adminID, path, caption); err != nil {
			b.logger.Error("Failed to send Excel file to admin",
				zap.Int64("admin_id", adminID),
				zap.Int64("order_id", order.ID),
				zap.Error(err))
		}
	}
}
