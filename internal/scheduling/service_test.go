package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memRepo is an in-memory Repository guarded by a mutex. Insert enforces
// the same active-slot uniqueness the partial index gives Postgres.
type memRepo struct {
	mu    sync.Mutex
	appts map[string]*Appointment
}

func newMemRepo() *memRepo {
	return &memRepo{appts: make(map[string]*Appointment)}
}

func (r *memRepo) ListActiveTimes(_ context.Context, doctorName, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var times []string
	for _, a := range r.appts {
		if a.DoctorName == doctorName && a.AppointmentDate == date && a.Status.Active() {
			times = append(times, a.AppointmentTime)
		}
	}
	return times, nil
}

func (r *memRepo) Insert(_ context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.appts {
		if a.DoctorName == appt.DoctorName &&
			a.AppointmentDate == appt.AppointmentDate &&
			a.AppointmentTime == appt.AppointmentTime &&
			a.Status.Active() {
			return ErrDuplicateSlot
		}
	}

	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) ListAll(_ context.Context) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, a := range r.appts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memRepo) ListByUser(_ context.Context, userID string) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, a := range r.appts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, id string, patch UpdatePatch) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Notes != nil {
		a.Notes = patch.Notes
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *memRepo) CompletePast(_ context.Context, before string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, a := range r.appts {
		if a.AppointmentDate < before && (a.Status == StatusPending || a.Status == StatusConfirmed) {
			a.Status = StatusCompleted
			n++
		}
	}
	return n, nil
}

// mutexLocker serializes critical sections per (doctor, date) key the way
// the Redis locker does, without blocking concurrent callers forever.
type mutexLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMutexLocker() *mutexLocker {
	return &mutexLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *mutexLocker) WithScheduleLock(ctx context.Context, doctorName, date string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	key := doctorName + "|" + date
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn(ctx)
}

func newTestService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return NewService(repo, newMutexLocker(), zap.NewNop()), repo
}

func booking(timeStr string) BookingRequest {
	return BookingRequest{
		PatientName:     "Jordan Smith",
		PatientEmail:    "jordan@example.com",
		PatientPhone:    "5550001111",
		DoctorName:      "Dr. House",
		AppointmentDate: "2026-09-01",
		AppointmentTime: timeStr,
		Reason:          "checkup",
		UserID:          "user-1",
	}
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("first booking succeeds", func(t *testing.T) {
		svc, _ := newTestService(t)

		appt, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)
		assert.NotEmpty(t, appt.ID)
		assert.Equal(t, StatusPending, appt.Status)
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		_, err = svc.Book(ctx, booking("09:10"))
		assert.ErrorIs(t, err, ErrSlotConflict)

		_, err = svc.Book(ctx, booking("08:41"))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("exact duplicate rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		_, err = svc.Book(ctx, booking("09:00"))
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("back to back slots allowed", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		_, err = svc.Book(ctx, booking("09:20"))
		require.NoError(t, err)

		_, err = svc.Book(ctx, booking("08:40"))
		require.NoError(t, err)
	})

	t.Run("different doctor does not conflict", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		other := booking("09:10")
		other.DoctorName = "Dr. Wilson"
		_, err = svc.Book(ctx, other)
		require.NoError(t, err)
	})

	t.Run("different date does not conflict", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		other := booking("09:10")
		other.AppointmentDate = "2026-09-02"
		_, err = svc.Book(ctx, other)
		require.NoError(t, err)
	})

	t.Run("cancelled appointment frees the slot", func(t *testing.T) {
		svc, _ := newTestService(t)

		appt, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		cancelled := StatusCancelled
		_, err = svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{Status: &cancelled})
		require.NoError(t, err)

		_, err = svc.Book(ctx, booking("09:10"))
		require.NoError(t, err)
	})

	t.Run("malformed time leaves no record", func(t *testing.T) {
		svc, repo := newTestService(t)

		_, err := svc.Book(ctx, booking("25:00"))
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("malformed date leaves no record", func(t *testing.T) {
		svc, repo := newTestService(t)

		req := booking("09:00")
		req.AppointmentDate = "01-09-2026"
		_, err := svc.Book(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDateFormat)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestBookConcurrentSameSlot(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	const workers = 32

	var (
		wg        sync.WaitGroup
		successes int64
		conflicts int64
		mu        sync.Mutex
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(ctx, booking("10:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			default:
				t.Errorf("unexpected booking error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, workers-1, conflicts)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookedSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("empty schedule returns empty slice", func(t *testing.T) {
		svc, _ := newTestService(t)

		times, duration, err := svc.BookedSlots(ctx, "Dr. House", "2026-09-01")
		require.NoError(t, err)
		assert.NotNil(t, times)
		assert.Empty(t, times)
		assert.Equal(t, SlotDurationMinutes, duration)
	})

	t.Run("excludes cancelled appointments", func(t *testing.T) {
		svc, _ := newTestService(t)

		appt, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)
		_, err = svc.Book(ctx, booking("10:00"))
		require.NoError(t, err)

		cancelled := StatusCancelled
		_, err = svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{Status: &cancelled})
		require.NoError(t, err)

		times, _, err := svc.BookedSlots(ctx, "Dr. House", "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00"}, times)
	})

	t.Run("reads do not consume availability", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		first, _, err := svc.BookedSlots(ctx, "Dr. House", "2026-09-01")
		require.NoError(t, err)
		second, _, err := svc.BookedSlots(ctx, "Dr. House", "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateAppointment(ctx, "any-id", UpdatePatch{})
		assert.ErrorIs(t, err, ErrEmptyPatch)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		bogus := Status("scheduled")
		_, err := svc.UpdateAppointment(ctx, "any-id", UpdatePatch{Status: &bogus})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		svc, _ := newTestService(t)

		confirmed := StatusConfirmed
		_, err := svc.UpdateAppointment(ctx, "missing", UpdatePatch{Status: &confirmed})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("applies status and notes", func(t *testing.T) {
		svc, _ := newTestService(t)

		appt, err := svc.Book(ctx, booking("09:00"))
		require.NoError(t, err)

		confirmed := StatusConfirmed
		notes := "bring previous reports"
		updated, err := svc.UpdateAppointment(ctx, appt.ID, UpdatePatch{Status: &confirmed, Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, notes, *updated.Notes)
	})
}

func TestListForCaller(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Book(ctx, booking("09:00"))
	require.NoError(t, err)

	other := booking("10:00")
	other.UserID = "user-2"
	_, err = svc.Book(ctx, other)
	require.NoError(t, err)

	own, err := svc.ListForCaller(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListForCaller(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := svc.ListForCaller(ctx, "user-3", false)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCompletePastAppointments(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	past := booking("09:00")
	past.AppointmentDate = "2020-01-01"
	appt, err := svc.Book(ctx, past)
	require.NoError(t, err)

	upcoming := booking("09:00")
	upcoming.AppointmentDate = time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	future, err := svc.Book(ctx, upcoming)
	require.NoError(t, err)

	n, err := svc.CompletePastAppointments(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)

	still, err := repo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, still.Status)
}
