package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BOT KEYBOARDS

func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}

func vinChoiceKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonVINEnterText),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonSkip),
		),
	)
}

func volumeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	half := len(volumePresets) / 2
	first := make([]tgbotapi.KeyboardButton, 0, half)
	second := make([]tgbotapi.KeyboardButton, 0, len(volumePresets)-half)
	for i, v := range volumePresets {
		if i < half {
			first = append(first, tgbotapi.NewKeyboardButton(v))
		} else {
			second = append(second, tgbotapi.NewKeyboardButton(v))
		}
	}
	return tgbotapi.NewReplyKeyboard(
		first,
		second,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonOtherVolume),
		),
	)
}

func fuelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(fuelTypes[0]),
			tgbotapi.NewKeyboardButton(fuelTypes[1]),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(fuelTypes[2]),
			tgbotapi.NewKeyboardButton(fuelTypes[3]),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(fuelTypes[4]),
		),
	)
}

func refinementKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonPartAddDetails),
			tgbotapi.NewKeyboardButton(ButtonPartAddPhoto),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonPartNoDetails),
		),
	)
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonSkip),
		),
	)
}

func morePartsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonMoreParts),
			tgbotapi.NewKeyboardButton(ButtonPartsDone),
		),
	)
}

func confirmationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonSubmit),
			tgbotapi.NewKeyboardButton(ButtonEdit),
		),
	)
}

func editKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonEditCity),
			tgbotapi.NewKeyboardButton(ButtonEditBrand),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonEditModel),
			tgbotapi.NewKeyboardButton(ButtonEditYear),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonEditVIN),
			tgbotapi.NewKeyboardButton(ButtonEditParts),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonEditContact),
			tgbotapi.NewKeyboardButton(ButtonBackToEdit),
		),
	)
}
