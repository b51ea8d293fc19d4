package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/rl1809/food-order/internal/adapter/gateway"
	"github.com/rl1809/food-order/internal/adapter/gateway/gatewaytest"
	"github.com/rl1809/food-order/internal/adapter/storage"
	"github.com/rl1809/food-order/internal/adapter/storage/memory"
	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/core/service"
	"github.com/rl1809/food-order/internal/port"
)

const (
	gatewaySecret = "stress-secret"
	queueSize     = 1024
)

// Races cash-on-delivery confirmations, card verifications and vendor actions against a
// single order and checks that exactly one payment row exists afterwards.
func main() {
	dsn := flag.String("mysql", "", "MySQL DSN; the in-memory store is used when empty")
	totalRequests := flag.Int("n", 60, "concurrent payment calls")
	flag.Parse()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions := memory.NewStore()
	var (
		orders   port.OrderRepository   = sessions
		catalog  port.CatalogRepository = sessions
		accounts port.AccountRepository = sessions
	)
	if *dsn != "" {
		db, err := sql.Open("mysql", *dsn)
		if err != nil {
			log.Fatalf("failed to open mysql: %v", err)
		}
		defer db.Close()
		if err := storage.Migrate(ctx, db, logger); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
		if err := storage.Seed(ctx, db, logger); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		adapter := storage.NewMySQLAdapter(db)
		orders, catalog, accounts = adapter, adapter, adapter
	} else if err := memory.Seed(sessions); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	events := service.NewEventDispatcher(queueSize, logger)
	defer events.Close()
	go func() {
		for range events.Events() {
		}
	}()

	rp := gatewaytest.NewServer()
	defer rp.Close()

	gw := gateway.NewRazorpayClient("stress-key", gatewaySecret, rp.URL)
	carts := service.NewCartService(catalog, sessions)
	checkout := service.NewOrderService(orders, sessions, events, logger, "")
	payments := service.NewPaymentService(orders, gw, events, logger, "")
	fulfillment := service.NewFulfillmentService(orders, events, logger, false)

	customer := lookupCustomer(ctx, accounts)
	vendorID := lookupVendor(ctx, accounts)

	menu, err := catalog.ListMenuItems(ctx, domain.MenuFilter{Query: "Margherita"})
	if err != nil || len(menu) == 0 {
		log.Fatalf("demo menu item missing: %v", err)
	}
	sess := domain.Session{ID: uuid.NewString()}
	if err := carts.AddItem(ctx, sess, menu[0].ID); err != nil {
		log.Fatalf("failed to fill cart: %v", err)
	}
	order, err := checkout.Checkout(ctx, sess, *customer)
	if err != nil {
		log.Fatalf("failed to place order: %v", err)
	}
	card, err := payments.StartCardPayment(ctx, customer.ID, order.ID)
	if err != nil {
		log.Fatalf("failed to open card payment: %v", err)
	}

	var (
		codOK, cardOK, vendorOK, failed atomic.Int32
		wg                              sync.WaitGroup
	)
	start := time.Now()

	for i := 0; i < *totalRequests; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			var err error
			switch n % 3 {
			case 0:
				_, err = payments.ConfirmCOD(ctx, customer.ID, order.ID)
				if err == nil {
					codOK.Add(1)
				}
			case 1:
				paymentID := fmt.Sprintf("pay_%d", n)
				_, err = payments.VerifyPayment(ctx, service.VerifyPaymentInput{
					GatewayOrderID: card.GatewayOrderID,
					PaymentID:      paymentID,
					Signature:      gatewaytest.Sign(gatewaySecret, card.GatewayOrderID, paymentID),
					OrderID:        order.ID,
				})
				if err == nil {
					cardOK.Add(1)
				}
			default:
				_, err = fulfillment.ApplyAction(ctx, vendorID, order.ID, domain.VendorActionAccept)
				if err == nil {
					vendorOK.Add(1)
				}
			}
			if err != nil {
				failed.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	payment, err := orders.GetPayment(ctx, order.ID)
	if err != nil {
		log.Fatalf("failed to load payment: %v", err)
	}
	final, err := orders.GetOrder(ctx, order.ID, domain.OrderScope{})
	if err != nil || final == nil {
		log.Fatalf("failed to load order: %v", err)
	}

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Order:            %d (total %s)\n", order.ID, order.TotalAmount.StringFixed(2))
	fmt.Printf("Total Requests:   %d\n", *totalRequests)
	fmt.Printf("COD confirmed:    %d\n", codOK.Load())
	fmt.Printf("Card verified:    %d\n", cardOK.Load())
	fmt.Printf("Vendor accepted:  %d\n", vendorOK.Load())
	fmt.Printf("Failed:           %d\n", failed.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if failed.Load() == 0 {
		fmt.Println("PASS: every call succeeded")
	} else {
		fmt.Printf("FAIL: %d calls failed\n", failed.Load())
	}

	if payment != nil && payment.OrderID == order.ID && payment.Amount.Equal(order.TotalAmount) {
		fmt.Printf("PASS: single payment row (%s, %s)\n", payment.Method, payment.Status)
	} else {
		fmt.Println("FAIL: payment row missing or inconsistent")
	}

	if final.Status == domain.OrderStatusAccepted {
		fmt.Println("PASS: order accepted")
	} else {
		fmt.Printf("FAIL: expected accepted, got %s\n", final.Status)
	}
}

func lookupCustomer(ctx context.Context, accounts port.AccountRepository) *domain.Customer {
	user, err := accounts.GetUserByUsername(ctx, "demo-customer")
	if err != nil || user == nil {
		log.Fatalf("demo customer missing: %v", err)
	}
	c, err := accounts.GetOrCreateCustomer(ctx, user.ID)
	if err != nil {
		log.Fatalf("failed to load customer: %v", err)
	}
	return c
}

func lookupVendor(ctx context.Context, accounts port.AccountRepository) int64 {
	user, err := accounts.GetUserByUsername(ctx, "demo-vendor")
	if err != nil || user == nil {
		log.Fatalf("demo vendor missing: %v", err)
	}
	v, err := accounts.GetVendorByUserID(ctx, user.ID)
	if err != nil || v == nil {
		log.Fatalf("failed to load vendor: %v", err)
	}
	return v.ID
}
