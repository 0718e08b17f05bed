package bot

// Dialogue steps, in nominal forward order.
const (
	StepCity           = "city"
	StepCarBrand       = "car_brand"
	StepCarModel       = "car_model"
	StepCarYear        = "car_year"
	StepVINChoice      = "vin_choice"
	StepVINText        = "vin_text"
	StepEngineVolume   = "engine_volume"
	StepFuelType       = "fuel_type"
	StepPartName       = "part_name"
	StepPartRefinement = "part_refinement"
	StepPartSpecifics  = "part_specifics"
	StepPartPhoto      = "part_photo"
	StepMoreParts      = "more_parts"
	StepContactInfo    = "contact_info"
	StepConfirmation   = "confirmation"
	StepEditChoice     = "edit_choice"
)

// Keyboard button labels. These literals are part of the wire contract:
// inbound text is matched against them by exact string equality.
const (
	ButtonSubmit = "🚀 Отправить заявку"
	ButtonEdit   = "✏️ Исправить"

	ButtonVINEnterText = "✍️ Ввести текстом"
	ButtonSkip         = "⏩ Пропустить"
	ButtonOtherVolume  = "Другой объём"

	ButtonPartAddDetails = "✍️ Добавить уточнение"
	ButtonPartAddPhoto   = "📷 Добавить фото"
	ButtonPartNoDetails  = "⏩ Без уточнений"
	ButtonMoreParts      = "➕ Добавить ещё деталь"
	ButtonPartsDone      = "✅ Это всё"

	ButtonEditCity    = "📍 Город"
	ButtonEditBrand   = "🚗 Марка"
	ButtonEditModel   = "🚙 Модель"
	ButtonEditYear    = "📅 Год выпуска"
	ButtonEditVIN     = "🔢 VIN и двигатель"
	ButtonEditParts   = "🔧 Запчасти"
	ButtonEditContact = "👤 Контакт"
	ButtonBackToEdit  = "↩️ Назад"
)

// DefaultPartDetails is stored for a part the user chose not to refine.
const DefaultPartDetails = "Без уточнений"

var fuelTypes = []string{"⛽ Бензин", "🛢 Дизель", "🔥 Газ/бензин", "🔋 Гибрид", "⚡ Электро"}

var volumePresets = []string{"1.4", "1.6", "1.8", "2.0", "2.5", "3.0"}

const (
	msgNoSession     = "Отправьте /start, чтобы начать оформление заявки на автозапчасти 🚗"
	msgInternalError = "Произошла внутренняя ошибка. Пожалуйста, начните заново командой /start"
	msgSubmitFailed  = "⚠️ Не удалось отправить заявку. Попробуйте ещё раз, нажав «🚀 Отправить заявку»."
	msgContactFormat = "Укажите имя и номер телефона одним сообщением, например: Иван +79161234567"
	msgUseButtons    = "Пожалуйста, используйте кнопки для продолжения"
)
