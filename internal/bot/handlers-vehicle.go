package bot

import (
	"context"
	"strings"
)

func (b *Bot) handleCity(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}
	text := strings.TrimSpace(in.Text)
	if text == "" || in.PhotoID != "" {
		b.sendError(ctx, chatID, "Пожалуйста, напишите название вашего города")
		return
	}

	sess.Draft.City = text

	if sess.Editing {
		sess.Editing = false
		b.showSummary(ctx, chatID, sess)
		return
	}

	sess.Step = StepCarBrand
	b.send(ctx, chatID, "🚗 Какой марки ваш автомобиль? (например: Toyota)", removeKeyboard())
}

func (b *Bot) handleCarBrand(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}
	text := strings.TrimSpace(in.Text)
	if text == "" || in.PhotoID != "" {
		b.sendError(ctx, chatID, "Пожалуйста, напишите марку автомобиля")
		return
	}

	sess.Draft.CarBrand = text

	if sess.Editing {
		sess.Editing = false
		b.showSummary(ctx, chatID, sess)
		return
	}

	sess.Step = StepCarModel
	b.send(ctx, chatID, "🚙 Какая модель? (например: Camry)", nil)
}

func (b *Bot) handleCarModel(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}
	text := strings.TrimSpace(in.Text)
	if text == "" || in.PhotoID != "" {
		b.sendError(ctx, chatID, "Пожалуйста, напишите модель автомобиля")
		return
	}

	sess.Draft.CarModel = text

	if sess.Editing {
		sess.Editing = false
		b.showSummary(ctx, chatID, sess)
		return
	}

	sess.Step = StepCarYear
	b.send(ctx, chatID, "📅 Какой год выпуска? (например: 2015)", nil)
}

func (b *Bot) handleCarYear(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	year, valid := ValidateCarYear(in.Text)
	if !valid {
		b.sendError(ctx, chatID, "Введите корректный год выпуска числом от 1950 до 2030")
		return
	}

	sess.Draft.CarYear = year

	if sess.Editing {
		sess.Editing = false
		b.showSummary(ctx, chatID, sess)
		return
	}

	b.askVIN(ctx, chatID, sess)
}

func (b *Bot) askVIN(ctx context.Context, chatID int64, sess *Session) {
	sess.Step = StepVINChoice
	text := `🔢 Укажите VIN или номер СТС — так подбор будет точнее.

Можно ввести текстом, отправить фото СТС прямо сюда или пропустить этот шаг.`
	b.send(ctx, chatID, text, vinChoiceKeyboard())
}

func (b *Bot) handleVINChoice(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	if in.PhotoID != "" {
		sess.Draft.VINPhotoID = in.PhotoID
		sess.Draft.VINText = ""
		sess.Draft.VINSkipped = false
		b.askEngineVolume(ctx, chatID, sess)
		return
	}

	switch in.Text {
	case ButtonVINEnterText:
		sess.Step = StepVINText
		b.send(ctx, chatID, "Введите VIN (17 символов) или номер СТС:", removeKeyboard())
	case ButtonSkip:
		sess.Draft.VINSkipped = true
		sess.Draft.VINText = ""
		sess.Draft.VINPhotoID = ""
		b.askEngineVolume(ctx, chatID, sess)
	default:
		b.sendError(ctx, chatID, "Выберите вариант на клавиатуре или отправьте фото СТС")
	}
}

func (b *Bot) handleVINText(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	// A photo sent here is still a photo of the СТС: take it instead of
	// keeping its caption as the VIN.
	if in.PhotoID != "" {
		sess.Draft.VINPhotoID = in.PhotoID
		sess.Draft.VINText = ""
		sess.Draft.VINSkipped = false
		b.askEngineVolume(ctx, chatID, sess)
		return
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		b.sendError(ctx, chatID, "Пожалуйста, введите VIN или номер СТС текстом")
		return
	}

	sess.Draft.VINText = text
	sess.Draft.VINPhotoID = ""
	sess.Draft.VINSkipped = false
	b.askEngineVolume(ctx, chatID, sess)
}
