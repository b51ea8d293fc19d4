package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rl1809/food-order/internal/adapter/handler/pb"
	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/core/service"
)

type GRPCHandler struct {
	pb.UnimplementedOrderOpsServer
	auth        *service.AuthService
	payments    *service.PaymentService
	fulfillment *service.FulfillmentService
	logger      *slog.Logger
}

var _ pb.OrderOpsServer = (*GRPCHandler)(nil)

func NewGRPCHandler(auth *service.AuthService, payments *service.PaymentService, fulfillment *service.FulfillmentService, logger *slog.Logger) *GRPCHandler {
	return &GRPCHandler{auth: auth, payments: payments, fulfillment: fulfillment, logger: logger}
}

// VerifyPayment reports a signature mismatch as status "failed" rather than an RPC error.
func (h *GRPCHandler) VerifyPayment(ctx context.Context, req *pb.VerifyPaymentRequest) (*pb.VerifyPaymentResponse, error) {
	payment, err := h.payments.VerifyPayment(ctx, service.VerifyPaymentInput{
		GatewayOrderID: req.GetRazorpayOrderId(),
		PaymentID:      req.GetRazorpayPaymentId(),
		Signature:      req.GetRazorpaySignature(),
		OrderID:        req.GetAppOrderId(),
	})
	switch {
	case err == nil:
		return &pb.VerifyPaymentResponse{Status: "ok", PaymentId: payment.TransactionID}, nil
	case errors.Is(err, domain.ErrSignature):
		return &pb.VerifyPaymentResponse{Status: "failed"}, nil
	default:
		return nil, h.toStatus(err)
	}
}

func (h *GRPCHandler) ApplyVendorAction(ctx context.Context, req *pb.VendorActionRequest) (*pb.VendorActionResponse, error) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	if !ok || p.Role != domain.RoleVendor {
		return nil, status.Error(codes.PermissionDenied, "vendor role required")
	}

	order, err := h.fulfillment.ApplyAction(ctx, p.ProfileID, req.GetOrderId(), domain.VendorAction(req.GetAction()))
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.VendorActionResponse{OrderId: order.ID, Status: string(order.Status)}, nil
}

func (h *GRPCHandler) toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, "order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		h.logger.Error("grpc call failed", slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}

// AuthInterceptor resolves the bearer token in the "authorization" metadata. Payment
// verification is open; every other method requires a valid token.
func (h *GRPCHandler) AuthInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod == pb.OrderOps_VerifyPayment_FullMethodName {
		return handler(ctx, req)
	}

	md, _ := metadata.FromIncomingContext(ctx)
	var raw string
	if values := md.Get("authorization"); len(values) > 0 {
		raw, _ = strings.CutPrefix(values[0], "Bearer ")
	}
	if raw == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	p, err := h.auth.Authenticate(raw)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return handler(context.WithValue(ctx, principalKey, p), req)
}
