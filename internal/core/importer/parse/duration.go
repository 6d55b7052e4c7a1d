package parse

import (
	"regexp"
	"strconv"
)

// ISO 8601 時長：PT30M、PT1H30M、PT1H 等，兩個分量都可省略
var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// 純數字前綴，當作分鐘數的後備解析
var leadingIntPattern = regexp.MustCompile(`^\s*(\d+)`)

// Duration 將 ISO-8601 式時長轉成總分鐘數
// 匹配到但算出 0 分鐘視為未知，回傳 nil；完全不匹配時退回純整數解析
func Duration(raw string) *int {
	if raw == "" {
		return nil
	}

	if match := durationPattern.FindStringSubmatch(raw); match != nil {
		hours := 0
		minutes := 0
		if match[1] != "" {
			hours, _ = strconv.Atoi(match[1])
		}
		if match[2] != "" {
			minutes, _ = strconv.Atoi(match[2])
		}
		total := hours*60 + minutes
		if total == 0 {
			return nil
		}
		return &total
	}

	// 後備：整串當作分鐘數
	if match := leadingIntPattern.FindStringSubmatch(raw); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return &n
		}
	}
	return nil
}
