// leadcapture — конечный автомат формы захвата лида
// (подписка на рассылку, запрос материала в модальном окне).
//
// Переходы:
//
//	Idle → Validating → Submitting → Success → (через задержку) Closed
//	                              ↘ Error → (правка email) Idle
//
// Невалидный email возвращает форму в Idle с сообщением для поля;
// отправка при этом не вызывается.
package leadcapture

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/go-content-portal/internal/region"
)

// State — состояние формы.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Success
	Error
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Variant — вариант формы; определяет задержку автосброса после успеха.
type Variant int

const (
	// Modal — модальное окно запроса материала.
	Modal Variant = iota
	// Inline — встроенный виджет подписки.
	Inline
)

// ResetDelay возвращает задержку перехода Success → Closed.
func (v Variant) ResetDelay() time.Duration {
	if v == Modal {
		return 1500 * time.Millisecond
	}
	return 3 * time.Second
}

var (
	// ErrInvalidEmail — email не прошёл синтаксическую проверку.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrBusy — отправка уже идёт или форма в состоянии успеха.
	ErrBusy = errors.New("submission in progress")
)

// SubmitFunc — запись лида и последующее действие (например, скачивание файла).
// Ошибка любого из шагов переводит форму в Error.
type SubmitFunc func(ctx context.Context, email string) error

// AfterFunc планирует f через d и возвращает функцию отмены.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option — настройка формы.
type Option func(*Form)

// WithAfterFunc подменяет планировщик автосброса (тесты).
func WithAfterFunc(after AfterFunc) Option {
	return func(f *Form) { f.after = after }
}

// WithOnChange регистрирует наблюдателя смены состояния.
// Вызывается вне блокировки формы.
func WithOnChange(fn func(State)) Option {
	return func(f *Form) { f.onChange = fn }
}

// Form — форма захвата лида. Безопасна для конкурентного использования.
type Form struct {
	mu       sync.Mutex
	variant  Variant
	submit   SubmitFunc
	after    AfterFunc
	onChange func(State)

	state    State
	email    string
	fieldErr string
	err      error
	stop     func() bool
	epoch    uint64
}

// New создаёт форму в состоянии Idle.
func New(variant Variant, submit SubmitFunc, opts ...Option) *Form {
	f := &Form{
		variant: variant,
		submit:  submit,
		after:   timeAfterFunc,
		state:   Idle,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// SetEmail обновляет поле email. Из Error и Closed форма снова становится редактируемой (Idle).
func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	f.email = email
	f.fieldErr = ""
	changed := false
	if f.state == Error || f.state == Closed {
		f.err = nil
		changed = f.setLocked(Idle)
	}
	f.mu.Unlock()

	f.notify(changed)
}

// Submit проверяет email и вызывает отправку.
// Невалидный email: ErrInvalidEmail, состояние Idle, FieldError() — ключ перевода.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Validating, Submitting, Success:
		f.mu.Unlock()
		return ErrBusy
	}

	f.setLocked(Validating)
	email := strings.TrimSpace(f.email)
	if !ValidEmail(email) {
		f.fieldErr = region.KeyEmailInvalid
		f.setLocked(Idle)
		f.mu.Unlock()
		f.notify(true)
		return ErrInvalidEmail
	}

	f.fieldErr = ""
	f.err = nil
	f.setLocked(Submitting)
	f.mu.Unlock()
	f.notify(true)

	err := f.submit(ctx, email)

	f.mu.Lock()
	if err != nil {
		f.err = err
		f.setLocked(Error)
		f.mu.Unlock()
		f.notify(true)
		return err
	}

	f.setLocked(Success)
	f.epoch++
	epoch := f.epoch
	f.stop = f.after(f.variant.ResetDelay(), func() { f.autoReset(epoch) })
	f.mu.Unlock()
	f.notify(true)

	return nil
}

// autoReset закрывает форму после успеха, если за это время она не менялась.
func (f *Form) autoReset(epoch uint64) {
	f.mu.Lock()
	if f.state != Success || f.epoch != epoch {
		f.mu.Unlock()
		return
	}
	f.email = ""
	f.stop = nil
	f.setLocked(Closed)
	f.mu.Unlock()

	f.notify(true)
}

// Close закрывает форму немедленно и отменяет отложенный автосброс.
func (f *Form) Close() {
	f.mu.Lock()
	if f.stop != nil {
		f.stop()
		f.stop = nil
	}
	f.epoch++
	f.email = ""
	f.fieldErr = ""
	f.err = nil
	changed := f.setLocked(Closed)
	f.mu.Unlock()

	f.notify(changed)
}

// State возвращает текущее состояние.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FieldError возвращает ключ перевода ошибки поля email ("" — ошибки нет).
func (f *Form) FieldError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErr
}

// Err возвращает ошибку последней отправки (в состоянии Error).
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Form) setLocked(s State) bool {
	if f.state == s {
		return false
	}
	f.state = s
	return true
}

func (f *Form) notify(changed bool) {
	if !changed || f.onChange == nil {
		return
	}
	f.onChange(f.State())
}
