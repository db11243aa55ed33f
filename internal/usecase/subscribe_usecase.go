package usecase

import "context"

// Subscription statuses returned to the client.
const (
	SubscribeStatusCreated = "created"
	SubscribeStatusExists  = "exists"
)

type SubscribeInput struct {
	Email     string
	FirstName string
	Source    string
	UserAgent string
	IPAddress string
}

type SubscribeOutput struct {
	Status string
}

// SubscribeUsecase manages the mailing list.
type SubscribeUsecase interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
}
