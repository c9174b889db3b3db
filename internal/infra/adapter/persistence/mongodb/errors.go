package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"williampedia/internal/domain/entity"
	"williampedia/internal/infra/adapter/persistence/storeerr"
)

// isUnavailable reports connection-level failures: network errors,
// server selection timeouts and a disconnected client.
func isUnavailable(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		storeerr.IsUnavailable(err)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
