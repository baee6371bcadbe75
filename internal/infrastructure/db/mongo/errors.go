package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/formotex/inventory-api/internal/core/domain"
)

// parseID converts a hex id into an ObjectID. Malformed ids are a client error.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// translate maps driver signals onto domain errors. notFound and duplicate are
// the sentinels for the calling collection; anything else is wrapped with op.
func translate(op string, err error, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments) && notFound != nil:
		return notFound
	case mongo.IsDuplicateKeyError(err) && duplicate != nil:
		return duplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
