package service

import (
	"log"

	"golang.org/x/sync/singleflight"

	"aquacal/backend/data"
	"aquacal/backend/types"
)

// FoodLookup is what the tracker needs from the food side.
type FoodLookup interface {
	Lookup(product string) (types.FoodInfo, error)
}

// WeatherLookup is what the tracker needs from the weather side.
type WeatherLookup interface {
	CurrentTemperature(city string) (float64, error)
}

// foodSearcher is implemented by FoodClient; tests substitute a fake.
type foodSearcher interface {
	Search(product string) (types.FoodInfo, error)
}

// temperatureFetcher is implemented by WeatherClient.
type temperatureFetcher interface {
	CurrentTemperature(city string) (float64, error)
}

// foodCatalog lets the food chain consult the persistent catalog before
// spending limiter capacity. A nil catalog disables the step.
type foodCatalog interface {
	Lookup(key string) (types.FoodInfo, bool)
	Store(key string, info types.FoodInfo)
}

// dbCatalog backs the catalog with the SQLite food store.
type dbCatalog struct{}

func (dbCatalog) Lookup(key string) (types.FoodInfo, bool) {
	item, err := data.GetFoodItem(key)
	if err != nil {
		return types.FoodInfo{}, false
	}
	return types.FoodInfo{ProductName: item.ProductName, CaloriesPer100g: item.CaloriesPer100g}, true
}

func (dbCatalog) Store(key string, info types.FoodInfo) {
	item := data.FoodItem{
		NameKey:         key,
		ProductName:     info.ProductName,
		CaloriesPer100g: info.CaloriesPer100g,
	}
	if err := data.SaveFoodItem(item); err != nil {
		log.Printf("Failed to store %q in food catalog: %v", key, err)
	}
}

// CachedFoodLookup resolves product names through cache -> catalog ->
// limiter -> client. Concurrent lookups for the same key are collapsed into
// one provider call.
type CachedFoodLookup struct {
	cache   *FoodCache
	catalog foodCatalog
	limiter *LookupLimiter
	client  foodSearcher
	group   singleflight.Group
}

func NewCachedFoodLookup(cache *FoodCache, catalog foodCatalog, limiter *LookupLimiter, client foodSearcher) *CachedFoodLookup {
	return &CachedFoodLookup{
		cache:   cache,
		catalog: catalog,
		limiter: limiter,
		client:  client,
	}
}

func (f *CachedFoodLookup) Lookup(product string) (types.FoodInfo, error) {
	key := NormalizeKey(product)
	if key == "" {
		return types.FoodInfo{}, ErrInvalidInput
	}

	if info, ok := f.cache.Get(key); ok {
		return info, nil
	}

	result, err, _ := f.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have filled the cache meanwhile.
		if info, ok := f.cache.Get(key); ok {
			return info, nil
		}

		if f.catalog != nil {
			if info, ok := f.catalog.Lookup(key); ok {
				f.cache.Add(key, info)
				return info, nil
			}
		}

		if !f.limiter.Allow() {
			log.Printf("food api is over the limit, rejecting lookup for %q", key)
			return nil, ErrThrottled
		}

		info, err := f.client.Search(product)
		if err != nil {
			return nil, err
		}

		f.cache.Add(key, info)
		if f.catalog != nil {
			f.catalog.Store(key, info)
		}
		return info, nil
	})
	if err != nil {
		return types.FoodInfo{}, err
	}
	return result.(types.FoodInfo), nil
}

// CachedWeatherLookup resolves city temperatures through the TTL cache ->
// limiter -> client path.
type CachedWeatherLookup struct {
	cache   *WeatherCache
	limiter *LookupLimiter
	client  temperatureFetcher
	group   singleflight.Group
}

func NewCachedWeatherLookup(cache *WeatherCache, limiter *LookupLimiter, client temperatureFetcher) *CachedWeatherLookup {
	return &CachedWeatherLookup{
		cache:   cache,
		limiter: limiter,
		client:  client,
	}
}

func (w *CachedWeatherLookup) CurrentTemperature(city string) (float64, error) {
	key := NormalizeKey(city)
	if key == "" {
		return 0, ErrInvalidInput
	}

	if temperature, ok := w.cache.Get(key); ok {
		return temperature, nil
	}

	result, err, _ := w.group.Do(key, func() (interface{}, error) {
		if temperature, ok := w.cache.Get(key); ok {
			return temperature, nil
		}

		if !w.limiter.Allow() {
			log.Printf("weather api is over the limit, rejecting lookup for %q", key)
			return nil, ErrThrottled
		}

		temperature, err := w.client.CurrentTemperature(city)
		if err != nil {
			return nil, err
		}

		w.cache.Add(key, temperature)
		return temperature, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(float64), nil
}
