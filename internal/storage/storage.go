// storage определяет контракты доступа к внешним хранилищам портала:
// репозиторий контента, приёмник лидов и ссылки на файлы материалов.
//
// Репозиторий контента — непрозрачная возможность: ядро знает только
// примитивы select / eq / neq / ilike-OR / order / limit и форму ответа
// (список сырых записей или ошибка). Изоляция по региону — ответственность
// вызывающего слоя (service), а не реализации.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-content-portal/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery — запрос нарушает контракт (пустая коллекция, неизвестная колонка и т.п.).
	ErrInvalidQuery = errors.New("invalid query")
)

// Record — сырая запись коллекции. Имена полей различаются между коллекциями
// (publish_date/event_date/created_at, summary/description) и известны только мапперам.
type Record map[string]any

// Op — оператор фильтра-равенства.
type Op int

const (
	// OpEq — column = value.
	OpEq Op = iota
	// OpNeq — column <> value.
	OpNeq
)

// Filter — условие по одной колонке. Все фильтры запроса объединяются через AND.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq — сокращение для фильтра равенства.
func Eq(column string, value any) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

// Neq — сокращение для фильтра неравенства.
func Neq(column string, value any) Filter { return Filter{Column: column, Op: OpNeq, Value: value} }

// Match — OR из ilike-сравнений одного шаблона с набором колонок.
// Pattern — готовый LIKE-шаблон (с % и экранированием).
type Match struct {
	Columns []string
	Pattern string
}

// Order — сортировка по одной колонке.
type Order struct {
	Column string
	Desc   bool
}

// Query — запрос к одной коллекции.
type Query struct {
	Collection string
	Filters    []Filter
	Match      *Match
	Order      *Order
	// Limit <= 0 — без ограничения (вызывающий слой обязан задавать потолок сам).
	Limit int
}

// ContentRepository — удалённое хранилище контента.
type ContentRepository interface {
	// Find возвращает записи коллекции в порядке Order.
	// Пустой результат — не ошибка.
	Find(ctx context.Context, q Query) ([]Record, error)
}

// LeadSink — приёмник лидов.
type LeadSink interface {
	// InsertLead сохраняет один лид. Повторы не дедуплицируются.
	InsertLead(ctx context.Context, lead models.Lead) error
}

// AssetLinker — выдача ссылок на файлы материалов (e-book, техдокумент).
type AssetLinker interface {
	// DownloadURL возвращает временную ссылку на объект по ключу.
	// Если объекта нет — ErrNotFound.
	DownloadURL(ctx context.Context, key string) (string, error)
}
