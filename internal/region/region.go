// region описывает закрытый набор регионов портала.
//
// Регион — ключ разделения контента: каждая запись принадлежит ровно одному
// региону, и ни один путь чтения не должен показывать записи чужого региона.
// Кроме кода региона пакет отвечает за локаль (формат дат, переводы) и за
// владение «активным» регионом (Store).
package region

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Region — код региона (значение колонки region в хранилище).
type Region string

// Поддерживаемые регионы.
const (
	Portugal Region = "pt"
	Brazil   Region = "br"
	Mexico   Region = "mx"
	Spain    Region = "es"
	USA      Region = "us"
)

// Default — регион по умолчанию, если в конфиге не задан иной.
const Default = Portugal

// ErrUnknown — код региона вне закрытого набора.
var ErrUnknown = errors.New("unknown region")

var locales = map[Region]language.Tag{
	Portugal: language.MustParse("pt-PT"),
	Brazil:   language.MustParse("pt-BR"),
	Mexico:   language.MustParse("es-MX"),
	Spain:    language.MustParse("es-ES"),
	USA:      language.MustParse("en-US"),
}

// All возвращает все регионы в стабильном порядке.
func All() []Region {
	return []Region{Portugal, Brazil, Mexico, Spain, USA}
}

// Parse нормализует строку (trim, lower) и проверяет принадлежность набору.
func Parse(s string) (Region, error) {
	r := Region(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknown
	}

	return r, nil
}

// Valid сообщает, входит ли регион в закрытый набор.
func (r Region) Valid() bool {
	_, ok := locales[r]
	return ok
}

// Code возвращает код региона для фильтра хранилища.
func (r Region) Code() string { return string(r) }

// String реализует fmt.Stringer.
func (r Region) String() string { return string(r) }

// Locale возвращает языковой тег региона. Для неизвестного региона — тег Default.
func (r Region) Locale() language.Tag {
	if tag, ok := locales[r]; ok {
		return tag
	}

	return locales[Default]
}

// lang — базовый язык региона ("pt", "es", "en").
func (r Region) lang() string {
	base, _ := r.Locale().Base()
	return base.String()
}

type ctxKey struct{}

// Into кладёт регион запроса в контекст.
func Into(ctx context.Context, r Region) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// From достаёт регион запроса из контекста.
func From(ctx context.Context) (Region, bool) {
	r, ok := ctx.Value(ctxKey{}).(Region)
	if !ok || !r.Valid() {
		return "", false
	}

	return r, true
}
