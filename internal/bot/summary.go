package bot

import (
	"autoparts-bot/internal/storage"
	"fmt"
	"strings"
)

// FormatDraftSummary renders the draft the way the user will review it.
func FormatDraftSummary(d OrderDraft) string {
	var sb strings.Builder

	sb.WriteString("📋 Проверьте заявку:\n\n")
	fmt.Fprintf(&sb, "📍 Город: %s\n", d.City)
	fmt.Fprintf(&sb, "🚗 Авто: %s %s, %d\n", d.CarBrand, d.CarModel, d.CarYear)

	switch {
	case d.VINText != "":
		fmt.Fprintf(&sb, "🔢 VIN/СТС: %s\n", d.VINText)
	case d.VINPhotoID != "":
		sb.WriteString("🔢 VIN/СТС: 📷 (фото)\n")
	default:
		sb.WriteString("🔢 VIN/СТС: не указан\n")
	}

	fmt.Fprintf(&sb, "⚙️ Двигатель: %s л, %s\n", d.EngineVolume, d.FuelType)

	sb.WriteString("🔧 Запчасти:\n")
	for i, part := range d.Parts {
		fmt.Fprintf(&sb, "  %d. %s — %s", i+1, part.Name, part.Details)
		if part.PhotoID != "" {
			sb.WriteString(" 📷")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "👤 Контакт: %s, %s\n", d.ContactName, FormatPhoneNumber(d.ContactPhone))
	sb.WriteString("\nВсё верно?")

	return sb.String()
}

// FormatOperatorNotification renders a completed order for the operator chat.
func FormatOperatorNotification(order storage.Order) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📦 НОВАЯ ЗАЯВКА #%d\n\n", order.ID)
	fmt.Fprintf(&sb, "📍 Город: %s\n", order.City)
	fmt.Fprintf(&sb, "🚗 Авто: %s %s, %d\n", order.CarBrand, order.CarModel, order.CarYear)

	switch {
	case order.VINText != "":
		fmt.Fprintf(&sb, "🔢 VIN/СТС: %s\n", order.VINText)
	case order.VINPhotoID != "":
		sb.WriteString("🔢 VIN/СТС: 📷 (фото ниже)\n")
	default:
		sb.WriteString("🔢 VIN/СТС: не указан\n")
	}

	fmt.Fprintf(&sb, "⚙️ Двигатель: %s л, %s\n", order.EngineVolume, order.FuelType)
	fmt.Fprintf(&sb, "👤 Контакт: %s %s\n", order.ContactName, order.ContactPhone)

	fmt.Fprintf(&sb, "🔧 Запчасти: %d шт.\n", len(order.Parts))
	for i, part := range order.Parts {
		fmt.Fprintf(&sb, "  %d. %s — %s", i+1, part.Name, part.Details)
		if part.PhotoID != "" {
			sb.WriteString(" 📷")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nДата: %s", order.CreatedAt.Format("02.01.2006 15:04"))

	return sb.String()
}
