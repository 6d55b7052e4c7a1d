package parse

import (
	"regexp"
	"strconv"
)

var digitRunPattern = regexp.MustCompile(`\d+`)

// Servings 取出字串中第一段連續數字作為份量
// 找不到數字回傳 nil
func Servings(raw string) *int {
	if raw == "" {
		return nil
	}
	match := digitRunPattern.FindString(raw)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}
