package checkout

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"verdura_back_end/internal/models"
)

const testSecret = "whsec_test_secret"

func signHeader(payload []byte, secret string) string {
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig))
}

func completedPayload(orderID, status string) []byte {
	return fmt.Appendf(nil,
		`{"id":"evt_1","object":"event","api_version":%q,"type":"checkout.session.completed","data":{"object":{"id":"cs_1","payment_status":%q,"metadata":{"orderId":%q}}}}`,
		stripe.APIVersion, status, orderID)
}

func paidOrderStore(t *testing.T) (*stubOrders, string) {
	t.Helper()
	orders := &stubOrders{}
	order := &models.Order{Email: "ada@example.com", LineItems: []models.OrderItem{{ProductID: "p1", UnitAmount: 100, Quantity: 2}}}
	if err := orders.Create(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return orders, order.ID.Hex()
}

func TestSettlement_BadSignatureMutatesNothing(t *testing.T) {
	orders, orderID := paidOrderStore(t)
	s := &Settlement{Secret: testSecret, Orders: orders}

	payload := completedPayload(orderID, "paid")
	err := s.Process(context.Background(), payload, signHeader(payload, "whsec_wrong"))

	var aerr *AuthenticationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if orders.markCalls != 0 {
		t.Fatal("a bad signature must never reach the store")
	}
	if orders.byID[orderID].Paid {
		t.Fatal("order must stay unpaid")
	}
}

func TestSettlement_IgnoredEventKindIsAcknowledged(t *testing.T) {
	orders, _ := paidOrderStore(t)
	s := &Settlement{Secret: testSecret, Orders: orders}

	payload := fmt.Appendf(nil,
		`{"id":"evt_2","object":"event","api_version":%q,"type":"invoice.paid","data":{"object":{}}}`, stripe.APIVersion)
	if err := s.Process(context.Background(), payload, signHeader(payload, testSecret)); err != nil {
		t.Fatalf("ignored kinds must be acknowledged, got %v", err)
	}
	if orders.markCalls != 0 {
		t.Fatal("ignored kinds must not touch the store")
	}
}

func TestSettlement_PaidEventTransitionsOnce(t *testing.T) {
	orders, orderID := paidOrderStore(t)
	notified := 0
	s := &Settlement{
		Secret: testSecret,
		Orders: orders,
		OnPaid: func(models.Order) { notified++ },
	}

	payload := completedPayload(orderID, "paid")
	if err := s.Process(context.Background(), payload, signHeader(payload, testSecret)); err != nil {
		t.Fatalf("process: %v", err)
	}
	if !orders.byID[orderID].Paid {
		t.Fatal("order must be paid after a verified completed event")
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}
}

func TestSettlement_RedeliveryIsIdempotent(t *testing.T) {
	orders, orderID := paidOrderStore(t)
	notified := 0
	s := &Settlement{
		Secret: testSecret,
		Orders: orders,
		OnPaid: func(models.Order) { notified++ },
	}

	payload := completedPayload(orderID, "paid")
	for i := 0; i < 2; i++ {
		if err := s.Process(context.Background(), payload, signHeader(payload, testSecret)); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}
	if !orders.byID[orderID].Paid {
		t.Fatal("order must end up paid")
	}
	if notified != 1 {
		t.Fatalf("exactly one logical transition expected, got %d notifications", notified)
	}
}

func TestSettlement_UnknownOrderIsAcknowledged(t *testing.T) {
	orders := &stubOrders{}
	s := &Settlement{Secret: testSecret, Orders: orders}

	payload := completedPayload("order123", "paid")
	if err := s.Process(context.Background(), payload, signHeader(payload, testSecret)); err != nil {
		t.Fatalf("unknown orders must be acknowledged, got %v", err)
	}
	if orders.markCalls != 1 {
		t.Fatalf("expected a single conditional write attempt, got %d", orders.markCalls)
	}
}

func TestSettlement_UnpaidStatusMutatesNothing(t *testing.T) {
	orders, orderID := paidOrderStore(t)
	s := &Settlement{Secret: testSecret, Orders: orders}

	payload := completedPayload(orderID, "unpaid")
	if err := s.Process(context.Background(), payload, signHeader(payload, testSecret)); err != nil {
		t.Fatalf("non-paid statuses must be acknowledged, got %v", err)
	}
	if orders.markCalls != 0 || orders.byID[orderID].Paid {
		t.Fatal("non-paid statuses must not touch the store")
	}
}

func TestSettlement_MissingOrderIDMutatesNothing(t *testing.T) {
	orders, _ := paidOrderStore(t)
	s := &Settlement{Secret: testSecret, Orders: orders}

	payload := completedPayload("", "paid")
	if err := s.Process(context.Background(), payload, signHeader(payload, testSecret)); err != nil {
		t.Fatalf("missing correlation id must be acknowledged, got %v", err)
	}
	if orders.markCalls != 0 {
		t.Fatal("missing correlation id must not touch the store")
	}
}

func TestSettlement_StoreErrorSurfaces(t *testing.T) {
	orders := &stubOrders{markErr: errors.New("mongo down")}
	s := &Settlement{Secret: testSecret, Orders: orders}

	payload := completedPayload("order123", "paid")
	err := s.Process(context.Background(), payload, signHeader(payload, testSecret))

	var oerr *OrchestrationError
	if !errors.As(err, &oerr) {
		t.Fatalf("store failures must surface so the provider retries, got %v", err)
	}
}
