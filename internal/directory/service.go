package directory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CreateDoctorInput struct {
	Name           string
	Specialization string
	Experience     string
	Contact        string
	Availability   string
	Gender         string
	Fees           float64
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if doctors == nil {
		doctors = []Doctor{}
	}
	return doctors, nil
}

func (s *Service) CreateDoctor(ctx context.Context, in CreateDoctorInput) (*Doctor, error) {
	if in.Gender == "" {
		in.Gender = "male"
	}
	if in.Fees == 0 {
		in.Fees = 500
	}

	doctor := &Doctor{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Specialization: in.Specialization,
		Experience:     in.Experience,
		Contact:        in.Contact,
		Availability:   in.Availability,
		Gender:         in.Gender,
		Fees:           in.Fees,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
