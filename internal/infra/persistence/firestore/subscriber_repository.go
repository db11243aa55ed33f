package firestore

import (
	"context"

	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/repository"
	"skatehubba/internal/util"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type subscriberRepository struct {
	client *firestore.Client
}

// NewSubscriberRepository creates a Firestore-backed SubscriberRepository.
func NewSubscriberRepository(client *firestore.Client) repository.SubscriberRepository {
	return &subscriberRepository{client: client}
}

// subscriberID derives the document ID from the normalized email so a
// second Create for the same address fails with AlreadyExists.
func subscriberID(email string) string {
	return util.SHA256Hex(email)
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *entity.Subscriber) error {
	doc := &subscriberDocument{
		Email:     subscriber.Email,
		FirstName: subscriber.FirstName,
		Source:    subscriber.Source,
		UserAgent: subscriber.UserAgent,
		IPAddress: subscriber.IPAddress,
		Verified:  subscriber.Verified,
		CreatedAt: subscriber.CreatedAt,
	}

	_, err := r.client.Collection(subscribersCollection).Doc(subscriberID(subscriber.Email)).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to create subscriber document")
	}

	return nil
}
