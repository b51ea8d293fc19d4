package handler

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/food-order/internal/adapter/gateway/gatewaytest"
	"github.com/rl1809/food-order/internal/adapter/handler/pb"
	"github.com/rl1809/food-order/internal/core/domain"
)

func newGRPCClient(t *testing.T, app *testApp) pb.OrderOpsClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewGRPCHandler(app.svc.Auth, app.svc.Payments, app.svc.Fulfillment, logger)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(h.AuthInterceptor))
	pb.RegisterOrderOpsServer(srv, h)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return pb.NewOrderOpsClient(conn)
}

func withToken(t *testing.T, app *testApp, p domain.Principal) context.Context {
	t.Helper()
	raw, err := app.tokens.Issue(p)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+raw)
}

func TestGRPC_VerifyPayment(t *testing.T) {
	app := newTestApp(t)
	client := newGRPCClient(t, app)
	c := app.customerClient()
	id := app.placeOrder(c)
	app.startCard(c, id)
	ctx := context.Background()

	resp, err := client.VerifyPayment(ctx, &pb.VerifyPaymentRequest{
		RazorpayOrderId:   rpOrderID(id),
		RazorpayPaymentId: "pay_9",
		RazorpaySignature: "bad",
		AppOrderId:        id,
	})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.GetStatus())
	assert.Equal(t, domain.OrderStatusPending, app.orderStatus(id))

	resp, err = client.VerifyPayment(ctx, &pb.VerifyPaymentRequest{
		RazorpayOrderId:   rpOrderID(id),
		RazorpayPaymentId: "pay_9",
		RazorpaySignature: gatewaytest.Sign(gatewaySecret, rpOrderID(id), "pay_9"),
		AppOrderId:        id,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.GetStatus())
	assert.Equal(t, "pay_9", resp.GetPaymentId())
	assert.Equal(t, domain.OrderStatusAccepted, app.orderStatus(id))

	_, err = client.VerifyPayment(ctx, &pb.VerifyPaymentRequest{AppOrderId: id})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_VerifyPayment_SignatureForAnotherOrder(t *testing.T) {
	app := newTestApp(t)
	client := newGRPCClient(t, app)
	c := app.customerClient()
	paid := app.placeOrder(c)
	app.startCard(c, paid)
	target := app.placeOrder(c)

	resp, err := client.VerifyPayment(context.Background(), &pb.VerifyPaymentRequest{
		RazorpayOrderId:   rpOrderID(paid),
		RazorpayPaymentId: "pay_3",
		RazorpaySignature: gatewaytest.Sign(gatewaySecret, rpOrderID(paid), "pay_3"),
		AppOrderId:        target,
	})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.GetStatus())
	assert.Equal(t, domain.OrderStatusPending, app.orderStatus(target))
}

func TestGRPC_ApplyVendorAction(t *testing.T) {
	app := newTestApp(t)
	client := newGRPCClient(t, app)
	id := app.placeOrder(app.customerClient())

	_, err := client.ApplyVendorAction(context.Background(), &pb.VendorActionRequest{OrderId: id, Action: "accept"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	customerCtx := withToken(t, app, domain.Principal{UserID: app.customer.UserID, Role: domain.RoleCustomer, ProfileID: app.customer.ID})
	_, err = client.ApplyVendorAction(customerCtx, &pb.VendorActionRequest{OrderId: id, Action: "accept"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	otherCtx := withToken(t, app, domain.Principal{UserID: app.other.UserID, Role: domain.RoleVendor, ProfileID: app.other.ID})
	_, err = client.ApplyVendorAction(otherCtx, &pb.VendorActionRequest{OrderId: id, Action: "cancel"})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, domain.OrderStatusPending, app.orderStatus(id))

	ownerCtx := withToken(t, app, domain.Principal{UserID: app.vendor.UserID, Role: domain.RoleVendor, ProfileID: app.vendor.ID})
	resp, err := client.ApplyVendorAction(ownerCtx, &pb.VendorActionRequest{OrderId: id, Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.GetStatus())
	assert.Equal(t, id, resp.GetOrderId())

	_, err = client.ApplyVendorAction(ownerCtx, &pb.VendorActionRequest{OrderId: id, Action: "fly"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
