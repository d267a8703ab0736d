package models

import (
	"reflect"
	"testing"
)

func TestCart_QuantitiesAreMultiplicities(t *testing.T) {
	cart := Cart{ProductIDs: []string{"p1", "p1", "p2", "p1"}}

	ids, counts := cart.Quantities()

	if !reflect.DeepEqual(ids, []string{"p1", "p2"}) {
		t.Fatalf("unexpected id order: %v", ids)
	}
	if counts["p1"] != 3 || counts["p2"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestCart_AddRemoveClear(t *testing.T) {
	var cart Cart
	cart.Add("p1")
	cart.Add("p1")
	cart.Add("p2")
	cart.Remove("p1")

	_, counts := cart.Quantities()
	if counts["p1"] != 1 || counts["p2"] != 1 {
		t.Fatalf("unexpected counts after remove: %v", counts)
	}

	cart.Clear()
	if len(cart.ProductIDs) != 0 {
		t.Fatal("clear must empty the cart")
	}
}

func TestOrder_Total(t *testing.T) {
	order := Order{LineItems: []OrderItem{
		{ProductID: "p1", UnitAmount: 100, Quantity: 2},
		{ProductID: "p2", UnitAmount: 250, Quantity: 1},
	}}

	if order.Total() != 450 {
		t.Fatalf("expected 450, got %d", order.Total())
	}
}
