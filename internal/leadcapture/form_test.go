package leadcapture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/stretchr/testify/require"
)

// manualTimer — ручной планировщик: сохраняет отложенные функции и задержки.
type manualTimer struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []func()
	stopped int
}

func (m *manualTimer) after(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, d)
	m.pending = append(m.pending, f)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.stopped++
		return true
	}
}

func (m *manualTimer) fire() {
	m.mu.Lock()
	fns := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"ana@fundicao.pt", true},
		{"a.b+c@mail.example.com.br", true},
		{"not-an-email", false},
		{"", false},
		{"a@b", false},
		{"a@.pt", false},
		{"a@pt.", false},
		{"@fundicao.pt", false},
		{"a@@fundicao.pt", false},
		{"a@b@c.pt", false},
		{"ana @fundicao.pt", false},
		{"ana@fundicao.pt\n", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ValidEmail(tc.in), tc.in)
	}
}

func TestForm_InvalidEmail_NeverSubmits(t *testing.T) {
	t.Parallel()

	calls := 0
	f := New(Inline, func(context.Context, string) error {
		calls++
		return nil
	})

	f.SetEmail("not-an-email")
	err := f.Submit(context.Background())

	require.ErrorIs(t, err, ErrInvalidEmail)
	require.Zero(t, calls)
	require.Equal(t, Idle, f.State())
	require.Equal(t, region.KeyEmailInvalid, f.FieldError())

	// Правка поля снимает сообщение.
	f.SetEmail("ana@fundicao.pt")
	require.Empty(t, f.FieldError())
}

func TestForm_Success_AutoResetsAfterVariantDelay(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		variant Variant
		delay   time.Duration
	}{
		{Modal, 1500 * time.Millisecond},
		{Inline, 3 * time.Second},
	} {
		timer := &manualTimer{}
		var got string
		f := New(tc.variant, func(_ context.Context, email string) error {
			got = email
			return nil
		}, WithAfterFunc(timer.after))

		f.SetEmail("  ana@fundicao.pt ")
		require.NoError(t, f.Submit(context.Background()))
		require.Equal(t, "ana@fundicao.pt", got)
		require.Equal(t, Success, f.State())
		require.Equal(t, []time.Duration{tc.delay}, timer.delays)

		timer.fire()
		require.Equal(t, Closed, f.State())
	}
}

func TestForm_SubmitError_IsEditableAgain(t *testing.T) {
	t.Parallel()

	boom := errors.New("sink down")
	fail := true
	f := New(Modal, func(context.Context, string) error {
		if fail {
			return boom
		}
		return nil
	}, WithAfterFunc((&manualTimer{}).after))

	f.SetEmail("ana@fundicao.pt")
	require.ErrorIs(t, f.Submit(context.Background()), boom)
	require.Equal(t, Error, f.State())
	require.ErrorIs(t, f.Err(), boom)

	// Повтор — только по инициативе пользователя.
	fail = false
	require.NoError(t, f.Submit(context.Background()))
	require.Equal(t, Success, f.State())
	require.NoError(t, f.Err())
}

func TestForm_BusyWhileSubmitting(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	f := New(Inline, func(context.Context, string) error {
		close(entered)
		<-release
		return nil
	}, WithAfterFunc((&manualTimer{}).after))
	f.SetEmail("ana@fundicao.pt")

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()

	<-entered
	require.Equal(t, Submitting, f.State())
	require.ErrorIs(t, f.Submit(context.Background()), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	require.ErrorIs(t, f.Submit(context.Background()), ErrBusy, "success is not re-submittable")
}

func TestForm_CloseCancelsPendingReset(t *testing.T) {
	t.Parallel()

	timer := &manualTimer{}
	var states []State
	f := New(Modal, func(context.Context, string) error { return nil },
		WithAfterFunc(timer.after),
		WithOnChange(func(s State) { states = append(states, s) }),
	)

	f.SetEmail("ana@fundicao.pt")
	require.NoError(t, f.Submit(context.Background()))
	f.Close()
	require.Equal(t, 1, timer.stopped)

	// Просроченный колбэк не меняет состояние повторно.
	f.SetEmail("outro@fundicao.pt")
	timer.fire()
	require.Equal(t, Idle, f.State())

	require.Equal(t, []State{Submitting, Success, Closed, Idle}, states)
}
