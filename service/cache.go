package service

import (
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"aquacal/backend/types"
)

// NormalizeKey canonicalizes user input for cache and catalog keys.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FoodCache memoizes food lookup results by normalized product name.
// Bounded capacity with LRU eviction, no expiry: nutrition facts do not go
// stale within a process lifetime.
type FoodCache struct {
	entries *lru.Cache[string, types.FoodInfo]
}

func NewFoodCache(size int) (*FoodCache, error) {
	entries, err := lru.New[string, types.FoodInfo](size)
	if err != nil {
		return nil, err
	}
	return &FoodCache{entries: entries}, nil
}

func (c *FoodCache) Get(key string) (types.FoodInfo, bool) {
	return c.entries.Get(key)
}

func (c *FoodCache) Add(key string, info types.FoodInfo) {
	c.entries.Add(key, info)
}

// WeatherCache memoizes temperatures by normalized city name. Entries expire
// after the configured TTL; an expired entry reads as absent and the next
// lookup goes back to the provider.
type WeatherCache struct {
	entries *expirable.LRU[string, float64]
}

func NewWeatherCache(size int, ttl time.Duration) *WeatherCache {
	return &WeatherCache{entries: expirable.NewLRU[string, float64](size, nil, ttl)}
}

func (c *WeatherCache) Get(key string) (float64, bool) {
	return c.entries.Get(key)
}

func (c *WeatherCache) Add(key string, temperature float64) {
	c.entries.Add(key, temperature)
}
