package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"aquacal/backend/types"
)

// FoodClient queries the OpenFoodFacts search endpoint. One attempt per
// call, no retries, transport default timeout.
type FoodClient struct {
	baseURL string
	client  *http.Client
}

func NewFoodClient(baseURL string) *FoodClient {
	return &FoodClient{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
}

// Search looks up a product by name. Among the returned products it prefers
// the first one with a non-zero energy value, falls back to the first
// product overall, and reports ErrNotFound for an empty list or a
// non-success status.
func (c *FoodClient) Search(product string) (types.FoodInfo, error) {
	query := url.Values{
		"action":       {"process"},
		"search_terms": {product},
		"json":         {"true"},
	}

	log.Printf("food api call for: %s", product)
	resp, err := c.client.Get(c.baseURL + "?" + query.Encode())
	if err != nil {
		return types.FoodInfo{}, fmt.Errorf("%w: openfoodfacts request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("openfoodfacts error: status %d, body %s", resp.StatusCode, string(body))
		return types.FoodInfo{}, ErrNotFound
	}

	var payload types.OpenFoodFactsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return types.FoodInfo{}, fmt.Errorf("%w: openfoodfacts response: %v", ErrUpstream, err)
	}

	if len(payload.Products) == 0 {
		return types.FoodInfo{}, ErrNotFound
	}

	chosen := payload.Products[0]
	for _, p := range payload.Products {
		if nutrimentToFloat(p.Nutriments.EnergyKcal100g) != 0 {
			chosen = p
			break
		}
	}

	name := chosen.ProductName
	if name == "" {
		name = "Unknown"
	}

	return types.FoodInfo{
		ProductName:     name,
		CaloriesPer100g: nutrimentToFloat(chosen.Nutriments.EnergyKcal100g),
	}, nil
}

// nutrimentToFloat converts a loosely typed OpenFoodFacts nutriment value.
// The API serves numbers for most products and strings for some.
func nutrimentToFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
