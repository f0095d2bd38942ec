// service содержит бизнес-логику портала: агрегированный поиск,
// поиск сущности с изоляцией по региону, списки, захват лидов.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-content-portal/internal/config"
	"github.com/pribylovaa/go-content-portal/internal/metrics"
	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует или принадлежит другому региону.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — неизвестный регион/вид контента, пустые аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValidation — лид не прошёл проверку (до любого сетевого вызова).
	// Транспорт: 422.
	ErrValidation = errors.New("validation failed")
	// ErrUnavailable — основной запрос к хранилищу или запись лида не удались.
	// Транспорт: 503, повтор — по инициативе пользователя.
	ErrUnavailable = errors.New("unavailable")
	// ErrStale — ответ устарел: регион сменился, пока запрос выполнялся.
	ErrStale = errors.New("stale response")
)

// KindError — сбой запроса одного вида контента в агрегированном поиске
// или при загрузке связанных материалов.
type KindError struct {
	Kind models.Kind
	Err  error
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *KindError) Unwrap() error { return e.Err }

// ValidationError — ошибка конкретного поля лида.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Service — бизнес-логика портала.
type Service struct {
	repo    storage.ContentRepository
	leads   storage.LeadSink
	assets  storage.AssetLinker
	cfg     config.Config
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option — необязательная настройка Service.
type Option func(*Service)

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAssets подключает выдачу ссылок на файлы (MinIO).
// Без неё follow-up скачивания использует file_url записи.
func WithAssets(a storage.AssetLinker) Option {
	return func(s *Service) { s.assets = a }
}

// WithClock подменяет источник времени (тесты).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New создает новый экземпляр Service.
func New(repo storage.ContentRepository, leads storage.LeadSink, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		leads: leads,
		cfg:   cfg,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// perKindLimit — потолок выдачи поиска на один вид.
func (s *Service) perKindLimit() int {
	n := s.cfg.Search.PerKindLimit
	if n <= 0 || n > config.MaxPerKindLimit {
		return config.MaxPerKindLimit
	}
	return n
}

// queryTimeout — дедлайн одного запроса к хранилищу (0 — без отдельного дедлайна).
func (s *Service) queryTimeout() time.Duration {
	return s.cfg.Timeouts.Query
}
