// models содержит доменные сущности портала: виды контента, view-модели,
// результат поиска и лид.
// Эти типы используются слоями бизнес-логики, маппинга и транспорта.
package models

import "errors"

// Kind — вид контента (одна коллекция хранилища).
type Kind string

// Виды контента портала.
const (
	KindNews     Kind = "news"
	KindSupplier Kind = "suppliers"
	KindFoundry  Kind = "foundries"
	KindMaterial Kind = "materials"
	KindEbook    Kind = "ebooks"
	KindEvent    Kind = "events"
)

// ErrUnknownKind — вид контента вне набора Kinds().
var ErrUnknownKind = errors.New("unknown content kind")

// Kinds возвращает все виды контента в порядке секций выдачи.
func Kinds() []Kind {
	return []Kind{KindNews, KindSupplier, KindFoundry, KindMaterial, KindEbook, KindEvent}
}

// ParseKind проверяет, что строка — известный вид контента.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}

	return "", ErrUnknownKind
}
