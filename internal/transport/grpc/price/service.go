package price

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pricing.v1.PriceService"

const (
	GetEffectivePriceMethod = "/" + ServiceName + "/GetEffectivePrice"
	CreatePriceMethod       = "/" + ServiceName + "/CreatePrice"
	UpdatePriceMethod       = "/" + ServiceName + "/UpdatePrice"
)

// GetEffectivePriceRequest asks for the price in effect at ApplicationDate.
type GetEffectivePriceRequest struct {
	BrandID         *int32     `json:"brand_id,omitempty"`
	ProductID       *int64     `json:"product_id,omitempty"`
	ApplicationDate *time.Time `json:"application_date,omitempty"`
}

// PriceFields are the client-settable fields of create and update.
type PriceFields struct {
	BrandID   *int32           `json:"brand_id,omitempty"`
	ProductID *int64           `json:"product_id,omitempty"`
	PriceList *int32           `json:"price_list,omitempty"`
	StartDate *time.Time       `json:"start_date,omitempty"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Currency  string           `json:"currency,omitempty"`
}

// CreatePriceRequest creates a price.
type CreatePriceRequest struct {
	Price *PriceFields `json:"price,omitempty"`
}

// UpdatePriceRequest replaces the price identified by PriceID.
type UpdatePriceRequest struct {
	PriceID int64        `json:"price_id"`
	Price   *PriceFields `json:"price,omitempty"`
}

// Price is the public view of a stored price.
type Price struct {
	PriceID   int64           `json:"price_id"`
	BrandID   int32           `json:"brand_id"`
	ProductID int64           `json:"product_id"`
	PriceList int32           `json:"price_list"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
}

// PriceReply wraps the price returned by every method.
type PriceReply struct {
	Price *Price `json:"price,omitempty"`
}

// PriceServiceServer is the server API for the price service.
type PriceServiceServer interface {
	GetEffectivePrice(context.Context, *GetEffectivePriceRequest) (*PriceReply, error)
	CreatePrice(context.Context, *CreatePriceRequest) (*PriceReply, error)
	UpdatePrice(context.Context, *UpdatePriceRequest) (*PriceReply, error)
}

// RegisterPriceServiceServer registers srv with s.
func RegisterPriceServiceServer(s grpc.ServiceRegistrar, srv PriceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the price service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PriceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetEffectivePrice",
			Handler:    getEffectivePriceHandler,
		},
		{
			MethodName: "CreatePrice",
			Handler:    createPriceHandler,
		},
		{
			MethodName: "UpdatePrice",
			Handler:    updatePriceHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/price_service",
}

func getEffectivePriceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetEffectivePriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PriceServiceServer).GetEffectivePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetEffectivePriceMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PriceServiceServer).GetEffectivePrice(ctx, req.(*GetEffectivePriceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func createPriceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreatePriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PriceServiceServer).CreatePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CreatePriceMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PriceServiceServer).CreatePrice(ctx, req.(*CreatePriceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func updatePriceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdatePriceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PriceServiceServer).UpdatePrice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: UpdatePriceMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PriceServiceServer).UpdatePrice(ctx, req.(*UpdatePriceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PriceServiceClient is the client API for the price service.
type PriceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPriceServiceClient creates a client that speaks the JSON codec.
func NewPriceServiceClient(cc grpc.ClientConnInterface) *PriceServiceClient {
	return &PriceServiceClient{cc: cc}
}

func (c *PriceServiceClient) GetEffectivePrice(ctx context.Context, in *GetEffectivePriceRequest, opts ...grpc.CallOption) (*PriceReply, error) {
	out := new(PriceReply)
	if err := c.cc.Invoke(ctx, GetEffectivePriceMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PriceServiceClient) CreatePrice(ctx context.Context, in *CreatePriceRequest, opts ...grpc.CallOption) (*PriceReply, error) {
	out := new(PriceReply)
	if err := c.cc.Invoke(ctx, CreatePriceMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PriceServiceClient) UpdatePrice(ctx context.Context, in *UpdatePriceRequest, opts ...grpc.CallOption) (*PriceReply, error) {
	out := new(PriceReply)
	if err := c.cc.Invoke(ctx, UpdatePriceMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PriceServiceClient) callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
