package price

import (
	"context"
	"fmt"

	"github.com/light-bringer/price-resolver/internal/app/price/domain"
	"github.com/light-bringer/price-resolver/internal/app/price/lifecycle"
	"github.com/light-bringer/price-resolver/internal/app/price/queries/get_effective_price"
)

// Handler implements PriceServiceServer.
// It's a thin coordinator that delegates to the lifecycle service.
type Handler struct {
	prices *lifecycle.Service
}

var _ PriceServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC price handler.
func NewHandler(prices *lifecycle.Service) *Handler {
	return &Handler{
		prices: prices,
	}
}

// GetEffectivePrice returns the price in effect, or NotFound.
func (h *Handler) GetEffectivePrice(ctx context.Context, req *GetEffectivePriceRequest) (*PriceReply, error) {
	price, ok, err := h.prices.GetEffectivePrice(ctx, &get_effective_price.Request{
		At:        req.ApplicationDate,
		BrandID:   req.BrandID,
		ProductID: req.ProductID,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	if !ok {
		return nil, mapDomainErrorToGRPC(domain.ErrPriceNotFound)
	}
	return domainToReply(price), nil
}

// CreatePrice creates a new price.
func (h *Handler) CreatePrice(ctx context.Context, req *CreatePriceRequest) (*PriceReply, error) {
	if err := validateCreatePriceRequest(req); err != nil {
		return nil, err
	}

	price, err := h.prices.Create(ctx, domain.CreateCommand{PriceCommand: fieldsToCommand(req.Price)})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return domainToReply(price), nil
}

// UpdatePrice replaces an existing price.
func (h *Handler) UpdatePrice(ctx context.Context, req *UpdatePriceRequest) (*PriceReply, error) {
	if err := validateUpdatePriceRequest(req); err != nil {
		return nil, err
	}

	price, ok, err := h.prices.Update(ctx, req.PriceID, fieldsToCommand(req.Price))
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	if !ok {
		return nil, mapDomainErrorToGRPC(fmt.Errorf("price %d: %w", req.PriceID, domain.ErrPriceNotFound))
	}
	return domainToReply(price), nil
}
