package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	redisclient "github.com/carebridge/healthcare-backend/internal/redis"
)

var (
	// ErrSlotConflict is deliberately free of any detail about the
	// colliding appointment; callers only learn the minimum spacing.
	ErrSlotConflict = errors.New("requested slot overlaps an existing appointment")

	ErrScheduleBusy      = errors.New("schedule is currently being booked, please retry")
	ErrInvalidDateFormat = errors.New("date must be YYYY-MM-DD")
	ErrInvalidStatus     = errors.New("invalid appointment status")
	ErrEmptyPatch        = errors.New("no update data provided")
)

type BookingRequest struct {
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	DoctorName      string
	AppointmentDate string
	AppointmentTime string
	Reason          string
	UserID          string
}

type Service struct {
	repo   Repository
	locker redisclient.Locker
	log    *zap.Logger
}

func NewService(repo Repository, locker redisclient.Locker, log *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		log:    log,
	}
}

// Book runs the whole booking transaction: validate the proposed slot,
// fetch the doctor's active intervals for that date, check for overlap and
// insert. The fetch-check-insert sequence is a check-then-act race under
// concurrent callers, so it runs inside a per-(doctor, date) schedule lock;
// the partial unique index on active slots backstops the exact-minute case.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	proposed, err := ParseTimeRange(req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if err := validateDate(req.AppointmentDate); err != nil {
		return nil, err
	}

	var created *Appointment

	err = s.locker.WithScheduleLock(ctx, req.DoctorName, req.AppointmentDate, func(lockCtx context.Context) error {
		existing, err := s.activeIntervals(lockCtx, req.DoctorName, req.AppointmentDate)
		if err != nil {
			return fmt.Errorf("fetch active intervals: %w", err)
		}

		if hasConflict(proposed, existing) {
			return ErrSlotConflict
		}

		appt := &Appointment{
			ID:              uuid.NewString(),
			PatientName:     req.PatientName,
			PatientEmail:    req.PatientEmail,
			PatientPhone:    req.PatientPhone,
			DoctorName:      req.DoctorName,
			AppointmentDate: req.AppointmentDate,
			AppointmentTime: req.AppointmentTime,
			Reason:          req.Reason,
			UserID:          req.UserID,
			Status:          StatusPending,
			CreatedAt:       time.Now().UTC(),
		}

		if err := s.repo.Insert(lockCtx, appt); err != nil {
			if errors.Is(err, ErrDuplicateSlot) {
				return ErrSlotConflict
			}
			return err
		}

		created = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrScheduleBusy
		}
		return nil, err
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", created.ID),
		zap.String("doctor", created.DoctorName),
		zap.String("date", created.AppointmentDate),
		zap.String("time", created.AppointmentTime),
	)

	return created, nil
}

// BookedSlots is the read-only availability projection: the occupied start
// times for one doctor/date plus the fixed slot duration, for clients to
// derive free slots themselves. It is advisory only; a concurrent booking
// may land between this read and a later write attempt.
func (s *Service) BookedSlots(ctx context.Context, doctorName, date string) ([]string, int, error) {
	times, err := s.repo.ListActiveTimes(ctx, doctorName, date)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch booked slots: %w", err)
	}

	if times == nil {
		times = []string{}
	}
	return times, SlotDurationMinutes, nil
}

// activeIntervals maps stored time strings to intervals, skipping entries
// that no longer parse. Stored data is validated at write time, so a
// malformed row is an anomaly worth a log line but must never take down
// read-side availability.
func (s *Service) activeIntervals(ctx context.Context, doctorName, date string) ([]TimeRange, error) {
	times, err := s.repo.ListActiveTimes(ctx, doctorName, date)
	if err != nil {
		return nil, err
	}

	intervals := make([]TimeRange, 0, len(times))
	for _, t := range times {
		tr, err := ParseTimeRange(t)
		if err != nil {
			s.log.Warn("skipping malformed stored appointment time",
				zap.String("doctor", doctorName),
				zap.String("date", date),
				zap.String("time", t),
			)
			continue
		}
		intervals = append(intervals, tr)
	}

	return intervals, nil
}

// hasConflict is the pure conflict evaluator. It short-circuits on the
// first overlap; the caller's only decision is accept or reject.
func hasConflict(proposed TimeRange, existing []TimeRange) bool {
	for _, e := range existing {
		if proposed.Overlaps(e) {
			return true
		}
	}
	return false
}

// ListForCaller scopes reads by the caller's role: admins see every
// appointment, everyone else only their own.
func (s *Service) ListForCaller(ctx context.Context, userID string, admin bool) ([]Appointment, error) {
	var (
		appts []Appointment
		err   error
	)
	if admin {
		appts, err = s.repo.ListAll(ctx)
	} else {
		appts, err = s.repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	if appts == nil {
		appts = []Appointment{}
	}
	return appts, nil
}

// UpdateAppointment applies a role-gated status/notes patch. Status is
// re-validated here so conflict evaluation can always trust stored values.
func (s *Service) UpdateAppointment(ctx context.Context, id string, patch UpdatePatch) (*Appointment, error) {
	if patch.Status == nil && patch.Notes == nil {
		return nil, ErrEmptyPatch
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	appt, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	return appt, nil
}

// DeleteAppointment removes the record entirely, releasing its interval
// from conflict consideration immediately.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CompletePastAppointments sweeps appointments whose date has passed and
// are still pending or confirmed, marking them completed. Invoked
// periodically by the completion worker.
func (s *Service) CompletePastAppointments(ctx context.Context) (int64, error) {
	today := time.Now().UTC().Format("2006-01-02")

	n, err := s.repo.CompletePast(ctx, today)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.log.Info("completed past appointments", zap.Int64("count", n))
	}
	return n, nil
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, date)
	}
	return nil
}
