package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"verdura_back_end/internal/database"
	"verdura_back_end/internal/models"
)

const productIndex = "products"

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexProduct indexe un produit MongoDB dans Elasticsearch
func IndexProduct(p models.Product) {
	if database.ElasticClient == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.ElasticClient)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Title, res.String())
	} else {
		log.Printf("✅ Produit indexé dans Elasticsearch: %s", p.Title)
	}
}

// RemoveProduct retire un produit supprimé de l'index
func RemoveProduct(productID string) {
	if database.ElasticClient == nil {
		return
	}

	req := esapi.DeleteRequest{
		Index:      productIndex,
		DocumentID: productID,
	}

	res, err := req.Do(context.Background(), database.ElasticClient)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	defer res.Body.Close()
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchProducts cherche des produits par titre ou description
func SearchProducts(query string) ([]map[string]interface{}, error) {
	if database.ElasticClient == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "description"},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.ElasticClient)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("index non trouvé ou vide")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("réponse Elastic invalide (pas de hits)")
	}

	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("aucun résultat trouvé")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, hit := range hitsArray {
		hitMap, _ := hit.(map[string]interface{})
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
