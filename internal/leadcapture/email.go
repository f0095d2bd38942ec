package leadcapture

import (
	"strings"
	"unicode"
)

// ValidEmail — синтаксическая проверка адреса до любого сетевого вызова:
// ровно один '@', непустая локальная часть, в домене есть '.' не на краях,
// пробельных символов нет.
func ValidEmail(s string) bool {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	if strings.Count(s, "@") != 1 {
		return false
	}

	local, domain, _ := strings.Cut(s, "@")
	if local == "" || len(domain) < 3 {
		return false
	}

	return strings.Contains(domain[1:len(domain)-1], ".")
}
