package backend

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/temporal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"moms-kitchen/storefront/types"
)

// classify maps transport and workflow errors onto the storefront's error
// vocabulary.
func classify(op string, err error) error {
	switch {
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %v", op, types.ErrBackendUnavailable, err)
	case isRejection(err):
		return &types.ValidationError{Msg: rejectionMessage(err)}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var unavailable *serviceerror.Unavailable
	var deadline *serviceerror.DeadlineExceeded
	// the backend workflow not running looks like a backend outage
	var notFound *serviceerror.NotFound
	if errors.As(err, &unavailable) || errors.As(err, &deadline) || errors.As(err, &notFound) {
		return true
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return true
		}
	}
	return false
}

func isRejection(err error) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr)
}

func rejectionMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}

func isQueryFailure(err error) bool {
	var failed *serviceerror.QueryFailed
	return errors.As(err, &failed)
}
