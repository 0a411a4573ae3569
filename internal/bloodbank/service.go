package bloodbank

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyPatch = errors.New("no update data provided")

type CreateRecordInput struct {
	BloodType      string
	UnitsAvailable int
	HospitalName   string
	Contact        string
	Address        string
}

// Requester is the authenticated caller snapshot attached to a request.
type Requester struct {
	ID    string
	Name  string
	Email string
	Phone string
}

type CreateRequestInput struct {
	BloodType      string
	UnitsRequested int
	HospitalName   string
	PatientName    string
	Urgency        string
	Notes          *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRecords(ctx context.Context) ([]Record, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Service) CreateRecord(ctx context.Context, in CreateRecordInput) (*Record, error) {
	rec := &Record{
		ID:             uuid.NewString(),
		BloodType:      in.BloodType,
		UnitsAvailable: in.UnitsAvailable,
		HospitalName:   in.HospitalName,
		Contact:        in.Contact,
		Address:        in.Address,
		LastUpdated:    time.Now().UTC(),
	}

	if err := s.repo.InsertRecord(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id string, patch RecordPatch) (*Record, error) {
	if patch.UnitsAvailable == nil && patch.Contact == nil && patch.Address == nil {
		return nil, ErrEmptyPatch
	}
	return s.repo.UpdateRecord(ctx, id, patch)
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	return s.repo.DeleteRecord(ctx, id)
}

func (s *Service) CreateRequest(ctx context.Context, by Requester, in CreateRequestInput) (*Request, error) {
	if in.Urgency == "" {
		in.Urgency = "normal"
	}

	req := &Request{
		ID:             uuid.NewString(),
		UserID:         by.ID,
		UserName:       by.Name,
		UserEmail:      by.Email,
		UserPhone:      by.Phone,
		BloodType:      in.BloodType,
		UnitsRequested: in.UnitsRequested,
		HospitalName:   in.HospitalName,
		PatientName:    in.PatientName,
		Urgency:        in.Urgency,
		Notes:          in.Notes,
		Status:         RequestPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.InsertRequest(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// ListRequestsForCaller scopes reads: admins see everything, users see
// only requests they filed.
func (s *Service) ListRequestsForCaller(ctx context.Context, userID string, admin bool) ([]Request, error) {
	var (
		requests []Request
		err      error
	)
	if admin {
		requests, err = s.repo.ListRequests(ctx)
	} else {
		requests, err = s.repo.ListRequestsByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	if requests == nil {
		requests = []Request{}
	}
	return requests, nil
}

func (s *Service) UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*Request, error) {
	if patch.Status == nil && patch.AdminNotes == nil {
		return nil, ErrEmptyPatch
	}
	return s.repo.UpdateRequest(ctx, id, patch)
}

func (s *Service) DeleteRequest(ctx context.Context, id string) error {
	return s.repo.DeleteRequest(ctx, id)
}
