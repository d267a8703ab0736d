package payement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"verdura_back_end/internal/checkout"
	"verdura_back_end/internal/models"
)

type stubProducts struct {
	products []models.Product
	err      error
}

func (s *stubProducts) FindByIDs(_ context.Context, _ []string) ([]models.Product, error) {
	return s.products, s.err
}

type stubOrders struct {
	orders map[string]*models.Order
}

func (s *stubOrders) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	if s.orders == nil {
		s.orders = make(map[string]*models.Order)
	}
	s.orders[order.ID.Hex()] = order
	return nil
}

func (s *stubOrders) MarkPaid(_ context.Context, orderID string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Paid {
		return nil, nil
	}
	order.Paid = true
	return order, nil
}

type stubSessions struct {
	url string
	err error
}

func (s *stubSessions) Start(_ context.Context, _ models.Order) (string, error) {
	return s.url, s.err
}

func checkoutRouter(orch *checkout.Orchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/checkout", CheckoutHandler(orch))
	return r
}

func checkoutBody(ids ...string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf(`{"name":"Ada","email":"ada@example.com","city":"Lyon","postalCode":"69001","streetAddress":"1 rue Test","country":"FR","cartProducts":[%s]}`,
		strings.Join(quoted, ","))
}

func TestCheckoutHandler_ReturnsRedirectURL(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Title: "Monstera", Price: 12.50}
	router := checkoutRouter(&checkout.Orchestrator{
		Products: &stubProducts{products: []models.Product{p}},
		Orders:   &stubOrders{},
		Sessions: &stubSessions{url: "https://stripe.example/session"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody(p.ID.Hex())))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["url"] != "https://stripe.example/session" {
		t.Fatalf("unexpected url %q", resp["url"])
	}
}

func TestCheckoutHandler_EmptyCartIs400(t *testing.T) {
	router := checkoutRouter(&checkout.Orchestrator{
		Products: &stubProducts{},
		Orders:   &stubOrders{},
		Sessions: &stubSessions{},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutHandler_UpstreamFailureIsGeneric(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Title: "Monstera", Price: 12.50}
	router := checkoutRouter(&checkout.Orchestrator{
		Products: &stubProducts{products: []models.Product{p}},
		Orders:   &stubOrders{},
		Sessions: &stubSessions{err: errors.New("stripe: 503 service unavailable")},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody(p.ID.Hex())))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "503 service unavailable") {
		t.Fatal("upstream detail must not leak to the client")
	}
}
