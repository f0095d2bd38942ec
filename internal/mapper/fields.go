// mapper переводит сырые записи коллекций в view-модели.
//
// Мапперы — тотальные функции: отсутствие необязательного поля не ошибка,
// вместо него подставляется заглушка (картинка-плейсхолдер, переведённый
// «Sem Imagem», 0 для счётчиков). Имена сырых полей известны только здесь.
package mapper

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

// PlaceholderImage — картинка для записей без изображения.
const PlaceholderImage = "/placeholder.svg"

var strict = bluemonday.StrictPolicy()

// str возвращает первое непустое строковое значение из перечисленных полей.
func str(rec storage.Record, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(toString(rec[k])); s != "" {
			return s
		}
	}

	return ""
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case [16]byte:
		// pgx отдаёт uuid как [16]byte при сканировании в map.
		return uuid.UUID(x).String()
	case uuid.UUID:
		return x.String()
	case fmt.Stringer:
		return x.String()
	case int, int16, int32, int64, float32, float64, bool:
		return fmt.Sprint(x)
	default:
		return ""
	}
}

// integer возвращает первое целочисленное значение из перечисленных полей (иначе 0).
func integer(rec storage.Record, keys ...string) int {
	for _, k := range keys {
		switch x := rec[k].(type) {
		case int:
			return x
		case int16:
			return int(x)
		case int32:
			return int(x)
		case int64:
			return int(x)
		case float64:
			return int(x)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
				return n
			}
		}
	}

	return 0
}

// flag возвращает true, если хотя бы одно из полей истинно.
func flag(rec storage.Record, keys ...string) bool {
	for _, k := range keys {
		switch x := rec[k].(type) {
		case bool:
			if x {
				return true
			}
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil && b {
				return true
			}
		}
	}

	return false
}

// zonedLayouts несут смещение и задают момент времени.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999-07:00",
}

// wallLayouts не несут смещения: это время на часах региона записи.
var wallLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timestamp возвращает первое разбираемое время из перечисленных полей (UTC).
// Значения без смещения трактуются как время в поясе региона r.
func timestamp(rec storage.Record, r region.Region, keys ...string) time.Time {
	for _, k := range keys {
		switch x := rec[k].(type) {
		case time.Time:
			if !x.IsZero() {
				return x.UTC()
			}
		case string:
			s := strings.TrimSpace(x)
			for _, l := range zonedLayouts {
				if t, err := time.Parse(l, s); err == nil {
					return t.UTC()
				}
			}
			for _, l := range wallLayouts {
				if t, err := time.ParseInLocation(l, s, r.Location()); err == nil {
					return t.UTC()
				}
			}
		}
	}

	return time.Time{}
}

// list возвращает непустые элементы строкового массива.
func list(rec storage.Record, key string) []string {
	var raw []string

	switch x := rec[key].(type) {
	case []string:
		raw = x
	case []any:
		for _, v := range x {
			raw = append(raw, toString(v))
		}
	case string:
		raw = strings.Split(x, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// plain убирает HTML-разметку из описаний (CMS хранит их как rich text).
func plain(s string) string {
	if s == "" {
		return ""
	}

	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
