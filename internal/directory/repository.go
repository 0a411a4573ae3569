package directory

import (
	"context"
	"errors"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type Repository interface {
	List(ctx context.Context) ([]Doctor, error)
	Insert(ctx context.Context, doctor *Doctor) error
	Delete(ctx context.Context, id string) error
}
