package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"swadbazaar-backend/internal/database"
	"swadbazaar-backend/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//
// --- PRODUCT INDEXING ---
//

// IndexProduct pushes a product document into Elasticsearch.
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialised, cannot index:", p.Name)
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      "products",
		DocumentID: p.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic index error:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic returned an error for %s: %s", p.Name, res.String())
	} else {
		log.Printf("✅ Product indexed in Elasticsearch: %s", p.Name)
	}
}

// RemoveProductFromIndex drops a product after admin deletion.
func RemoveProductFromIndex(id string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: "products", DocumentID: id}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic delete error:", err)
		return
	}
	res.Body.Close()
}

//
// --- CATALOG SEARCH ---
//

// SearchProducts runs a multi_match query over name, description, category
// and tags.
func SearchProducts(query string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("elasticsearch client not initialised")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "category", "tags"},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("query encode error: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"products"},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("elastic request error: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch error: %+v", e)
		return nil, errors.New("index missing or empty")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("JSON decode error: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid elastic response (no hits)")
	}

	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("no results found")
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
