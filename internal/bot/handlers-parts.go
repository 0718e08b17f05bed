package bot

import (
	"autoparts-bot/internal/storage"
	"context"
	"strings"
)

func (b *Bot) askPartName(ctx context.Context, chatID int64, sess *Session) {
	sess.Step = StepPartName
	if len(sess.Draft.Parts) == 0 {
		b.send(ctx, chatID, "🔧 Какая запчасть вам нужна? Напишите название:", removeKeyboard())
		return
	}
	b.send(ctx, chatID, "🔧 Напишите название следующей детали:", removeKeyboard())
}

func (b *Bot) handlePartName(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}
	text := strings.TrimSpace(in.Text)
	if text == "" || in.PhotoID != "" {
		b.sendError(ctx, chatID, "Пожалуйста, напишите название запчасти текстом")
		return
	}

	sess.Draft.CurrentPart = &storage.Part{
		Name:    text,
		Details: DefaultPartDetails,
	}
	sess.Step = StepPartRefinement
	b.send(ctx, chatID, "Нужно ли что-то уточнить по этой детали?", refinementKeyboard())
}

func (b *Bot) handlePartRefinement(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	switch in.Text {
	case ButtonPartAddDetails:
		sess.Step = StepPartSpecifics
		b.send(ctx, chatID, "Опишите уточнения: сторона установки, оригинал или аналог, номер детали...", removeKeyboard())
	case ButtonPartAddPhoto:
		sess.Step = StepPartPhoto
		b.send(ctx, chatID, "📷 Отправьте фото детали:", skipKeyboard())
	case ButtonPartNoDetails:
		b.finishPart(ctx, chatID, sess)
	default:
		b.sendError(ctx, chatID, msgUseButtons)
	}
}

func (b *Bot) handlePartSpecifics(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}
	text := strings.TrimSpace(in.Text)
	if text == "" || in.PhotoID != "" {
		b.sendError(ctx, chatID, "Пожалуйста, опишите уточнения текстом")
		return
	}

	sess.Draft.CurrentPart.Details = text
	sess.Step = StepPartPhoto
	b.send(ctx, chatID, "Прикрепите фото детали или нажмите «⏩ Пропустить»", skipKeyboard())
}

func (b *Bot) handlePartPhoto(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	if in.PhotoID != "" {
		sess.Draft.CurrentPart.PhotoID = in.PhotoID
		b.finishPart(ctx, chatID, sess)
		return
	}
	if in.Text == ButtonSkip {
		b.finishPart(ctx, chatID, sess)
		return
	}
	b.sendError(ctx, chatID, "Отправьте фото или нажмите «⏩ Пропустить»")
}

// finishPart moves the scratch part into the collected list and asks whether
// the user needs anything else.
func (b *Bot) finishPart(ctx context.Context, chatID int64, sess *Session) {
	sess.Draft.Parts = append(sess.Draft.Parts, *sess.Draft.CurrentPart)
	sess.Draft.CurrentPart = nil

	sess.Step = StepMoreParts
	b.send(ctx, chatID, "Деталь добавлена ✅ Нужно что-то ещё?", morePartsKeyboard())
}

func (b *Bot) handleMoreParts(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	switch in.Text {
	case ButtonMoreParts:
		b.askPartName(ctx, chatID, sess)
	case ButtonPartsDone:
		// "That's all" closes the parts block; an editing detour returns to
		// the summary instead of re-asking the contact.
		if sess.Editing {
			sess.Editing = false
			b.showSummary(ctx, chatID, sess)
			return
		}
		sess.Step = StepContactInfo
		b.send(ctx, chatID, "👤 Как с вами связаться? "+msgContactFormat, removeKeyboard())
	default:
		b.sendError(ctx, chatID, msgUseButtons)
	}
}
