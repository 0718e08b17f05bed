package bot

import "testing"

func TestValidateCarYear(t *testing.T) {
	tests := []struct {
		input string
		year  int
		ok    bool
	}{
		{"2015", 2015, true},
		{"1950", 1950, true},
		{"2030", 2030, true},
		{" 2001 ", 2001, true},
		{"1949", 0, false},
		{"2031", 0, false},
		{"abc", 0, false},
		{"20 15", 0, false},
		{"2015г", 0, false},
		{"-2015", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		year, ok := ValidateCarYear(tt.input)
		if ok != tt.ok || year != tt.year {
			t.Errorf("ValidateCarYear(%q) = (%d, %v), want (%d, %v)",
				tt.input, year, ok, tt.year, tt.ok)
		}
	}
}

func TestNormalizeEngineVolume(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2.0", "2.0", true},
		{"2,0", "2.0", true},
		{"1.6", "1.6", true},
		{" 3,5 ", "3.5", true},
		{"10", "10", true},
		{"0.7", "0.7", true},
		{"0", "", false},
		{"-1.6", "", false},
		{"10.1", "", false},
		{"два литра", "", false},
		{"nan", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"0x1p+1", "", false},
		{"1e1", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeEngineVolume(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizeEngineVolume(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"+79161234567", "+79161234567", true},
		{"89161234567", "+79161234567", true},
		{"8 (916) 123-45-67", "+79161234567", true},
		{"+7 916 123 45 67", "+79161234567", true},
		{"79161234567", "", false},
		{"+7916123456", "", false},
		{"+791612345678", "", false},
		{"+12025550123", "", false},
		{"не телефон", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizePhoneNumber(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizePhoneNumber(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseContact(t *testing.T) {
	tests := []struct {
		input   string
		name    string
		phone   string
		wantErr bool
	}{
		{"Иван +79161234567", "Иван", "+79161234567", false},
		{"Иван Петров 89161234567", "Иван Петров", "+79161234567", false},
		{"Анна  Сергеевна   +79991112233", "Анна Сергеевна", "+79991112233", false},
		{"+79161234567", "", "", true},
		{"Иван", "", "", true},
		{"Иван 12345", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		name, phone, err := ParseContact(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseContact(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if name != tt.name || phone != tt.phone {
			t.Errorf("ParseContact(%q) = (%q, %q), want (%q, %q)",
				tt.input, name, phone, tt.name, tt.phone)
		}
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	if got := FormatPhoneNumber("+79161234567"); got != "+7 (916) 123-45-67" {
		t.Errorf("FormatPhoneNumber(+79161234567) = %q", got)
	}
	// Anything off-format passes through untouched.
	if got := FormatPhoneNumber("12345"); got != "12345" {
		t.Errorf("FormatPhoneNumber(12345) = %q", got)
	}
}
