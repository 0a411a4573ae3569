package bloodbank

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound  = errors.New("blood bank record not found")
	ErrRequestNotFound = errors.New("blood request not found")
)

type Repository interface {
	ListRecords(ctx context.Context) ([]Record, error)
	InsertRecord(ctx context.Context, rec *Record) error
	UpdateRecord(ctx context.Context, id string, patch RecordPatch) (*Record, error)
	DeleteRecord(ctx context.Context, id string) error

	InsertRequest(ctx context.Context, req *Request) error
	ListRequests(ctx context.Context) ([]Request, error)
	ListRequestsByUser(ctx context.Context, userID string) ([]Request, error)
	UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*Request, error)
	DeleteRequest(ctx context.Context, id string) error
}
