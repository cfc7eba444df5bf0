package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/lerose/boutique/internal/models"
)

// Index keeps the product catalog searchable. Sync calls are best-effort:
// the catalog service logs failures instead of failing the write.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func NewIndex(es *elasticsearch.Client, name string) *Index {
	return &Index{ES: es, Name: name}
}

func (i *Index) IndexProduct(ctx context.Context, p *models.Product) error {
	if i == nil || i.ES == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := i.ES.Index(
		i.Name,
		&buf,
		i.ES.Index.WithContext(ctx),
		i.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

func (i *Index) DeleteProduct(ctx context.Context, id uint) error {
	if i == nil || i.ES == nil {
		return nil
	}

	res, err := i.ES.Delete(
		i.Name,
		strconv.FormatUint(uint64(id), 10),
		i.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete product from index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product from index: %s", res.Status())
	}
	return nil
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if i == nil || i.ES == nil {
		return 0, nil, fmt.Errorf("search is not configured")
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Name),
		i.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
