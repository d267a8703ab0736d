package payement

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"verdura_back_end/internal/checkout"
	"verdura_back_end/internal/models"
)

const testSecret = "whsec_test_secret"

func webhookRouter(s *checkout.Settlement) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/webhook", StripeWebhook(s))
	return r
}

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

func postWebhook(router *gin.Engine, payload []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", sig)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStripeWebhook_BadSignatureIs400(t *testing.T) {
	orders := &stubOrders{}
	router := webhookRouter(&checkout.Settlement{Secret: testSecret, Orders: orders})

	payload := completedPayload("order123", "paid")
	rec := postWebhook(router, payload, signHeader(payload, "whsec_wrong"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStripeWebhook_PaidEventIs200(t *testing.T) {
	orders := &stubOrders{}
	order := &models.Order{Email: "ada@example.com"}
	if err := orders.Create(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	router := webhookRouter(&checkout.Settlement{Secret: testSecret, Orders: orders})

	payload := completedPayload(order.ID.Hex(), "paid")
	rec := postWebhook(router, payload, signHeader(payload, testSecret))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !order.Paid {
		t.Fatal("order must be paid")
	}
}

func TestStripeWebhook_IgnoredKindIs200(t *testing.T) {
	router := webhookRouter(&checkout.Settlement{Secret: testSecret, Orders: &stubOrders{}})

	payload := fmt.Appendf(nil,
		`{"id":"evt_2","object":"event","api_version":%q,"type":"charge.refunded","data":{"object":{}}}`, stripe.APIVersion)
	rec := postWebhook(router, payload, signHeader(payload, testSecret))

	if rec.Code != http.StatusOK {
		t.Fatalf("ignored kinds must be acknowledged, got %d", rec.Code)
	}
}

func TestStripeWebhook_MissingSecretIs503(t *testing.T) {
	router := webhookRouter(&checkout.Settlement{Secret: "", Orders: &stubOrders{}})

	payload := completedPayload("order123", "paid")
	rec := postWebhook(router, payload, signHeader(payload, testSecret))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the secret is unset, got %d", rec.Code)
	}
}
