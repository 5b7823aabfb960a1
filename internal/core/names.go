package core

import (
	"strconv"
	"unicode"
)

const defaultNicknamePrefix = "User"

// IsValidName reports whether s can be used as a nickname or channel title:
// non-empty, letters and digits only.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// nextDefaultNickname returns User<N> for the smallest N not taken according to inUse.
func nextDefaultNickname(inUse func(string) bool) string {
	for n := 0; ; n++ {
		nick := defaultNicknamePrefix + strconv.Itoa(n)
		if !inUse(nick) {
			return nick
		}
	}
}
