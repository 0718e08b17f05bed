package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ValidateCarYear accepts an all-digit year between 1950 and 2030.
func ValidateCarYear(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	if year < 1950 || year > 2030 {
		return 0, false
	}
	return year, true
}

var volumePattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// NormalizeEngineVolume turns "2,0"-style input into "2.0" and checks the
// value is a plain decimal number with 0 < v <= 10. The pattern gate keeps
// out the non-decimal forms ParseFloat would otherwise accept ("nan", "inf",
// hex floats, exponents).
func NormalizeEngineVolume(text string) (string, bool) {
	v := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	if !volumePattern.MatchString(v) {
		return "", false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 || f > 10 {
		return "", false
	}
	return v, true
}

var phonePattern = regexp.MustCompile(`^(\+7|8)\d{10}$`)

// NormalizePhoneNumber strips everything but digits and '+', requires a
// Russian number in +7/8 form and normalizes it to the +7 prefix.
func NormalizePhoneNumber(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '+' || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)

	if !phonePattern.MatchString(cleaned) {
		return "", false
	}
	if strings.HasPrefix(cleaned, "8") {
		cleaned = "+7" + cleaned[1:]
	}
	return cleaned, true
}

// ParseContact splits a contact line into a name and a normalized phone.
// The last whitespace-separated token is the phone; everything before it is
// the name.
func ParseContact(text string) (name, phone string, err error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", "", fmt.Errorf("contact must contain a name and a phone number")
	}

	normalized, ok := NormalizePhoneNumber(fields[len(fields)-1])
	if !ok {
		return "", "", fmt.Errorf("invalid phone number")
	}

	return strings.Join(fields[:len(fields)-1], " "), normalized, nil
}

// FormatPhoneNumber renders a +7 number as +7 (XXX) XXX-XX-XX.
func FormatPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "+7") && len(phone) == 12 {
		return fmt.Sprintf("%s (%s) %s-%s-%s",
			phone[:2],
			phone[2:5],
			phone[5:8],
			phone[8:10],
			phone[10:12])
	}
	return phone
}

func isFuelType(text string) bool {
	for _, fuel := range fuelTypes {
		if text == fuel {
			return true
		}
	}
	return false
}
