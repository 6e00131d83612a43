package classify

import "strings"

// CountryWide is the sentinel province for articles that cannot be pinned
// to a specific province.
const CountryWide = "Vietnam"

var provinces = []string{
	"Hanoi", "Ho Chi Minh City", "Da Nang", "Hai Phong", "Can Tho",
	"Binh Duong", "Dong Nai", "Hai Duong", "Binh Dinh", "Ba Ria-Vung Tau",
	"Quang Ninh", "Nghe An", "Long An", "Ninh Thuan", "Bac Ninh",
	"Thai Nguyen", "Thanh Hoa", "Khanh Hoa", "Lam Dong", "Tay Ninh",
	"Quang Nam", "Binh Thuan", "Phu Yen", "Vinh Phuc", "Bac Giang",
}

// Common alternate spellings seen in English-language coverage.
var provinceAliases = []struct {
	alias    string
	province string
}{
	{"hcmc", "Ho Chi Minh City"},
	{"tp hcm", "Ho Chi Minh City"},
	{"saigon", "Ho Chi Minh City"},
	{"ha noi", "Hanoi"},
	{"danang", "Da Nang"},
	{"vung tau", "Ba Ria-Vung Tau"},
}

// Province returns the first province mentioned in the article text, or the
// country-wide sentinel when none is found.
func Province(title, content string) string {
	text := strings.ToLower(title + " " + content)

	for _, p := range provinces {
		if strings.Contains(text, strings.ToLower(p)) {
			return p
		}
	}
	for _, a := range provinceAliases {
		if strings.Contains(text, a.alias) {
			return a.province
		}
	}
	return CountryWide
}
