package calendar

import "context"

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}
