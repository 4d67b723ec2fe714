package types

// ProfileRequest contains the request for a profile setup
type ProfileRequest struct {
	Weight      float64 `json:"weight"`
	Height      float64 `json:"height"`
	Age         int     `json:"age"`
	ActivityMin int     `json:"activity_min"`
	City        string  `json:"city"`
}

// LogWaterRequest contains the request for a water log
type LogWaterRequest struct {
	AmountMl int `json:"amount_ml"`
}

// LogFoodRequest contains the request for a food log
type LogFoodRequest struct {
	Product string  `json:"product"`
	Grams   float64 `json:"grams"`
}

// LogActivityRequest contains the request for an activity log
type LogActivityRequest struct {
	Activity string `json:"activity"`
	Minutes  int    `json:"minutes"`
}
