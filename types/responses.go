package types

// OpenFoodFactsSearchResponse represents the search response from the
// OpenFoodFacts API. Nutriment values arrive as numbers or strings depending
// on the product, so they are decoded loosely and converted by the client.
type OpenFoodFactsSearchResponse struct {
	Products []OpenFoodFactsProduct `json:"products"`
}

// OpenFoodFactsProduct is a single product entry in a search response.
type OpenFoodFactsProduct struct {
	ProductName string `json:"product_name"`
	Nutriments  struct {
		EnergyKcal100g interface{} `json:"energy-kcal_100g"`
	} `json:"nutriments"`
}

// OpenWeatherResponse represents the current-weather response from the
// OpenWeatherMap API. Temp is a pointer so a missing field is detectable.
type OpenWeatherResponse struct {
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// SetupResponse contains the computed goals and the initial summary
type SetupResponse struct {
	Goals   DailyGoals      `json:"goals"`
	Summary ProgressSummary `json:"summary"`
}

// ApiResponse represents a generic response from the API
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
