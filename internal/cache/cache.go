package cache

import (
	"context"
	"encoding/json"
	"time"

	"verdura_back_end/internal/database"
)

const CatalogCacheTTL = time.Hour

// GetJSON récupère une valeur depuis Redis. Retourne false si absente ou illisible.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if database.Redis == nil {
		return false
	}
	data, err := database.Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetJSON met une valeur en cache. Les échecs sont silencieux : le cache
// n'est jamais sur le chemin critique.
func SetJSON(ctx context.Context, key string, v interface{}) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, key, data, CatalogCacheTTL)
}

// InvalidateProducts invalide la liste des produits et les entrées individuelles données
func InvalidateProducts(ctx context.Context, productIDs ...string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, productCacheKeys(productIDs...)...)
}

func productCacheKeys(productIDs ...string) []string {
	keys := []string{"products:all"}
	for _, id := range productIDs {
		if id != "" {
			keys = append(keys, "product:"+id)
		}
	}
	return keys
}

// InvalidateCategories invalide la liste des catégories après mutation
func InvalidateCategories(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, "categories:all")
}
