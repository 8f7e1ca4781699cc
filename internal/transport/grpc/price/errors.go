package price

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return validationStatus(ve)

	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidDateFormat),
		errors.Is(err, domain.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrPriceNotFound):
		return status.Error(codes.NotFound, "price not found")

	case errors.Is(err, domain.ErrConcurrentModification):
		return status.Error(codes.Aborted, "price was modified concurrently")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")

	default:
		// Unknown error - return Internal
		return status.Error(codes.Internal, "internal server error")
	}
}

// validationStatus reports every violation as a BadRequest detail.
func validationStatus(ve *domain.ValidationError) error {
	br := &errdetails.BadRequest{}
	for _, v := range ve.Violations {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Message,
			Reason:      reason(v.Kind),
		})
	}

	st := status.New(codes.InvalidArgument, ve.Error())
	detailed, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func reason(kind error) string {
	switch {
	case errors.Is(kind, domain.ErrMissingField):
		return "MISSING_FIELD"
	case errors.Is(kind, domain.ErrInvalidDateFormat):
		return "INVALID_DATE_FORMAT"
	default:
		return "INVALID_ARGUMENT"
	}
}
