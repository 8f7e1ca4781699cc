package price

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// validateCreatePriceRequest validates the CreatePrice request envelope.
// Field rules are enforced by the domain.
func validateCreatePriceRequest(req *CreatePriceRequest) error {
	if req.Price == nil {
		return status.Error(codes.InvalidArgument, "price is required")
	}
	return nil
}

// validateUpdatePriceRequest validates the UpdatePrice request envelope.
func validateUpdatePriceRequest(req *UpdatePriceRequest) error {
	if req.Price == nil {
		return status.Error(codes.InvalidArgument, "price is required")
	}
	return nil
}
