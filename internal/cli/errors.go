package cli

import (
	"errors"

	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
)

var errConfirmRequired = errors.New("refusing to delete without --yes")

func errNotFound(kind, id string) error {
	return mutate.NotFoundError{Kind: kind, ID: id}
}
