// carousel — движок каруселей портала: оконный слайдер (индекс ограничен
// границами) и баннер с прокруткой по кругу, с автопрокруткой.
//
// Инвариант после любой операции: 0 <= Index <= MaxIndex,
// MaxIndex = max(0, len(Items) - PerView), PerView >= 1.
//
// Таймер автопрокрутки один на экземпляр. Он взводится и снимается только
// функцией rearm, которая смотрит на (autoplay, paused, число элементов).
package carousel

import (
	"slices"
	"sync"
	"time"
)

// DefaultInterval — период автопрокрутки по умолчанию.
const DefaultInterval = 5 * time.Second

// Mode — поведение индекса на границах.
type Mode int

const (
	// Windowed — индекс ограничен [0, MaxIndex]; Next на последнем окне — no-op.
	Windowed Mode = iota
	// Wrap — индекс по модулю len(Items); один слайд на экран.
	Wrap
)

// Ticker — источник тиков автопрокрутки.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc создаёт тикер с периодом d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{t: time.NewTicker(d)} }

// Config — настройки карусели.
type Config[T any] struct {
	Mode Mode
	// PerView — элементов в окне (только Windowed; <1 трактуется как 1).
	PerView int
	// Autoplay — включить автопрокрутку.
	Autoplay bool
	// Interval — период автопрокрутки (0 — DefaultInterval).
	Interval time.Duration
	// NewTicker — фабрика тикеров (nil — time.NewTicker).
	NewTicker TickerFunc
	// OnChange вызывается вне блокировки после каждого изменения индекса или набора.
	OnChange func(State[T])
}

// State — снимок карусели.
type State[T any] struct {
	Items        []T
	Index        int
	PerView      int
	MaxIndex     int
	Paused       bool
	Autoplay     bool
	ShowControls bool
}

// Carousel — карусель элементов T. Безопасна для конкурентного использования.
type Carousel[T any] struct {
	mu        sync.Mutex
	mode      Mode
	items     []T
	index     int
	perView   int
	autoplay  bool
	paused    bool
	closed    bool
	interval  time.Duration
	newTicker TickerFunc
	onChange  func(State[T])

	// stop снимает текущий таймер; gen отсекает тики снятых таймеров.
	stop func()
	gen  uint64
}

// New создаёт карусель и, если нужно, взводит автопрокрутку.
func New[T any](items []T, cfg Config[T]) *Carousel[T] {
	c := &Carousel[T]{
		mode:      cfg.Mode,
		items:     slices.Clone(items),
		perView:   normalizePerView(cfg.Mode, cfg.PerView),
		autoplay:  cfg.Autoplay,
		interval:  cfg.Interval,
		newTicker: cfg.NewTicker,
		onChange:  cfg.OnChange,
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.newTicker == nil {
		c.newTicker = newTimeTicker
	}

	c.mu.Lock()
	c.rearmLocked(false)
	c.mu.Unlock()

	return c
}

func normalizePerView(mode Mode, perView int) int {
	if mode == Wrap || perView < 1 {
		return 1
	}
	return perView
}

// Next — вперёд на один шаг.
func (c *Carousel[T]) Next() {
	c.update(func() bool { return c.stepLocked(1) })
}

// Prev — назад на один шаг.
func (c *Carousel[T]) Prev() {
	c.update(func() bool { return c.stepLocked(-1) })
}

// GoTo — абсолютный переход; индекс приводится к допустимому диапазону.
func (c *Carousel[T]) GoTo(index int) {
	c.update(func() bool {
		return c.setIndexLocked(clamp(index, 0, c.maxIndexLocked()))
	})
}

// Resize меняет число элементов в окне и пересчитывает MaxIndex.
// В режиме Wrap окно всегда из одного элемента.
func (c *Carousel[T]) Resize(perView int) {
	c.update(func() bool {
		pv := normalizePerView(c.mode, perView)
		changed := pv != c.perView
		c.perView = pv
		if c.setIndexLocked(min(c.index, c.maxIndexLocked())) {
			changed = true
		}
		return changed
	})
}

// SetItems заменяет набор элементов: индекс сбрасывается в 0, таймер перевзводится.
func (c *Carousel[T]) SetItems(items []T) {
	c.update(func() bool {
		c.items = slices.Clone(items)
		c.index = 0
		c.rearmLocked(true)
		return true
	})
}

// SetAutoplay включает или выключает автопрокрутку.
func (c *Carousel[T]) SetAutoplay(on bool) {
	c.mu.Lock()
	c.autoplay = on
	c.rearmLocked(true)
	c.mu.Unlock()
}

// Pause приостанавливает автопрокрутку, не трогая позицию (например, наведение курсора).
func (c *Carousel[T]) Pause() {
	c.mu.Lock()
	c.paused = true
	c.rearmLocked(false)
	c.mu.Unlock()
}

// Resume снимает паузу; отсчёт интервала начинается заново.
func (c *Carousel[T]) Resume() {
	c.mu.Lock()
	c.paused = false
	c.rearmLocked(false)
	c.mu.Unlock()
}

// Close останавливает автопрокрутку навсегда. Повторный вызов безопасен.
func (c *Carousel[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.rearmLocked(false)
	c.mu.Unlock()
}

// State возвращает снимок карусели.
func (c *Carousel[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Index возвращает текущий индекс.
func (c *Carousel[T]) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// MaxIndex возвращает max(0, len(Items) - PerView).
func (c *Carousel[T]) MaxIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxIndexLocked()
}

// ShowControls — нужны ли стрелки навигации: элементов больше, чем помещается в окно.
func (c *Carousel[T]) ShowControls() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) > c.perView
}

// Visible возвращает элементы текущего окна.
func (c *Carousel[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return nil
	}
	end := min(c.index+c.perView, len(c.items))
	return slices.Clone(c.items[c.index:end])
}

// Running сообщает, взведён ли таймер автопрокрутки.
func (c *Carousel[T]) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Carousel[T]) maxIndexLocked() int {
	return max(0, len(c.items)-c.perView)
}

func (c *Carousel[T]) stepLocked(delta int) bool {
	n := len(c.items)
	if n == 0 {
		return false
	}
	if c.mode == Wrap {
		return c.setIndexLocked(((c.index+delta)%n + n) % n)
	}
	return c.setIndexLocked(clamp(c.index+delta, 0, c.maxIndexLocked()))
}

// advanceLocked — шаг автопрокрутки. Оконный слайдер с последнего окна
// возвращается к первому, иначе автопрокрутка остановилась бы на краю.
func (c *Carousel[T]) advanceLocked() bool {
	if c.mode == Windowed && c.index >= c.maxIndexLocked() {
		return c.setIndexLocked(0)
	}
	return c.stepLocked(1)
}

func (c *Carousel[T]) setIndexLocked(i int) bool {
	if i == c.index {
		return false
	}
	c.index = i
	return true
}

func (c *Carousel[T]) snapshotLocked() State[T] {
	return State[T]{
		Items:        slices.Clone(c.items),
		Index:        c.index,
		PerView:      c.perView,
		MaxIndex:     c.maxIndexLocked(),
		Paused:       c.paused,
		Autoplay:     c.autoplay,
		ShowControls: len(c.items) > c.perView,
	}
}

// update применяет fn под блокировкой и уведомляет наблюдателя при изменении.
func (c *Carousel[T]) update(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	st := c.snapshotLocked()
	c.mu.Unlock()

	if changed && c.onChange != nil {
		c.onChange(st)
	}
}

// rearmLocked приводит таймер в соответствие с (autoplay, paused, число элементов).
// restart=true пересоздаёт работающий таймер (смена набора или настроек).
func (c *Carousel[T]) rearmLocked(restart bool) {
	want := c.autoplay && !c.paused && !c.closed && len(c.items) > 1

	if c.stop != nil && (!want || restart) {
		c.stop()
		c.stop = nil
	}
	if want && c.stop == nil {
		c.stop = c.startLocked()
	}
}

func (c *Carousel[T]) startLocked() func() {
	c.gen++
	gen := c.gen
	t := c.newTicker(c.interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C():
				c.tick(gen)
			}
		}
	}()

	return func() {
		c.gen++
		t.Stop()
		close(done)
	}
}

func (c *Carousel[T]) tick(gen uint64) {
	c.update(func() bool {
		if gen != c.gen || c.stop == nil {
			return false
		}
		return c.advanceLocked()
	})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
