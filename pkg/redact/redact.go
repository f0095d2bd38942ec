// redact маскирует персональные данные перед записью в логи.
// Используется при захвате лидов: e-mail не должен попадать в логи целиком.
package redact

import "strings"

// Email маскирует e-mail для логирования.
//
// Правила:
//   - строка должна содержать РОВНО один '@', иначе "***";
//   - локальная часть сокращается до двух первых рун + "***";
//   - если локальная часть не длиннее двух рун — "***@<domain>";
//   - домен сохраняется как есть.
//
// Примеры:
//
//	"joana@fundicao.pt" -> "jo***@fundicao.pt"
//	"ab@ex.com"         -> "***@ex.com"
//	"not-an-email"      -> "***"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := s[:i], s[i+1:]

	lr := []rune(local)
	if len(lr) > 2 {
		local = string(lr[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}
