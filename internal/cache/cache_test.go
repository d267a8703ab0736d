package cache

import (
	"reflect"
	"testing"
)

func TestProductCacheKeys_IncludesEachProduct(t *testing.T) {
	got := productCacheKeys("a1", "b2")
	want := []string{"products:all", "product:a1", "product:b2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestProductCacheKeys_SkipsEmptyIDs(t *testing.T) {
	got := productCacheKeys("", "a1", "")
	want := []string{"products:all", "product:a1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestProductCacheKeys_ListOnly(t *testing.T) {
	got := productCacheKeys()
	want := []string{"products:all"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
