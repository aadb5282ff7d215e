package grpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
	"github.com/Belphemur/StreamResolver/internal/config"
)

// ErrorDomain is the ErrorInfo domain attached to classified failures.
const ErrorDomain = "streamresolver"

// codeFor maps an error kind onto a gRPC status code.
func codeFor(kind apperrors.Kind) codes.Code {
	switch kind {
	case apperrors.KindInvalidRequest:
		return codes.InvalidArgument
	case apperrors.KindMetadataNotFound,
		apperrors.KindNoSearchResults,
		apperrors.KindNoMatchingMedia,
		apperrors.KindNoPlayableVariant:
		return codes.NotFound
	case apperrors.KindMalformedMetadata:
		return codes.FailedPrecondition
	case apperrors.KindStreamListUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// toStatusError converts a pipeline error into a gRPC status. The message is
// the per-kind text, never the cause, so provider details stay server-side.
func toStatusError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	kind, _ := apperrors.KindOf(err)
	st := status.New(codeFor(kind), apperrors.Message(kind))
	if kind == apperrors.KindUnknown {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Unclassified resolution failure")
		return st.Err()
	}

	withDetails, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: kind.String(),
		Domain: ErrorDomain,
	})
	if detailErr != nil {
		return st.Err()
	}
	return withDetails.Err()
}
