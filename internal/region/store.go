package region

import "sync"

// Store — единственный владелец «активного» региона процесса.
//
// Регион меняется только явным Switch. Каждое фактическое переключение
// увеличивает поколение (Generation): асинхронная работа, начатая при старом
// поколении, не должна публиковать результат после переключения.
type Store struct {
	mu      sync.RWMutex
	current Region
	gen     uint64
}

// NewStore создаёт хранилище с начальным регионом (обычно из URL/маршрута).
func NewStore(initial Region) (*Store, error) {
	if !initial.Valid() {
		return nil, ErrUnknown
	}

	return &Store{current: initial}, nil
}

// Current возвращает активный регион.
func (s *Store) Current() Region {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Generation возвращает текущее поколение.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.gen
}

// Snapshot атомарно возвращает регион и его поколение.
func (s *Store) Snapshot() (Region, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, s.gen
}

// Switch переключает активный регион и возвращает новое поколение.
// Переключение на тот же регион ничего не инвалидирует.
func (s *Store) Switch(r Region) (uint64, error) {
	if !r.Valid() {
		return 0, ErrUnknown
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r != s.current {
		s.current = r
		s.gen++
	}

	return s.gen, nil
}

// Translate переводит ключ на язык активного региона.
func (s *Store) Translate(key string) string {
	return s.Current().Translate(key)
}
