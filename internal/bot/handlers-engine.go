package bot

import "context"

func (b *Bot) askEngineVolume(ctx context.Context, chatID int64, sess *Session) {
	sess.Step = StepEngineVolume
	b.send(ctx, chatID, "⚙️ Укажите объём двигателя в литрах:", volumeKeyboard())
}

func (b *Bot) handleEngineVolume(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	// The escape choice re-enters free-text capture; the numeric bound is
	// applied when the typed value comes back.
	if in.Text == ButtonOtherVolume {
		b.send(ctx, chatID, "Введите объём двигателя в литрах, например 1.8:", removeKeyboard())
		return
	}

	volume, valid := NormalizeEngineVolume(in.Text)
	if !valid {
		b.sendError(ctx, chatID, "Объём должен быть числом от 0 до 10, например 2.0")
		return
	}

	sess.Draft.EngineVolume = volume
	sess.Step = StepFuelType
	b.send(ctx, chatID, "⛽ Выберите тип топлива:", fuelKeyboard())
}

func (b *Bot) handleFuelType(ctx context.Context, chatID int64, in IncomingMessage) {
	sess, ok := b.sessions.Get(chatID)
	if !ok {
		return
	}

	if !isFuelType(in.Text) {
		b.sendError(ctx, chatID, "Пожалуйста, выберите тип топлива кнопкой")
		return
	}

	sess.Draft.FuelType = in.Text

	// Fuel type closes the VIN & engine block, so an editing detour returns
	// to the summary from here.
	if sess.Editing {
		sess.Editing = false
		b.showSummary(ctx, chatID, sess)
		return
	}

	b.askPartName(ctx, chatID, sess)
}
