package utils

import "strings"

// MaskEmail скрывает локальную часть адреса для логов. Логин без "@"
// сокращается до первой буквы.
func MaskEmail(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		if len(s) <= 2 {
			return "***"
		}
		return s[:1] + "***"
	}
	if len(local) <= 1 {
		return "*@" + domain
	}
	return local[:1] + "***@" + domain
}
