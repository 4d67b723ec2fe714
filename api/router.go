// Package api provides the REST API for the AquaCal application
//
// @title AquaCal API
// @version 1.0
// @description Water, calorie and weather-adjusted hydration tracking API
// @host localhost:8080
// @BasePath /api
// @schemes http
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"aquacal/backend/data"
	"aquacal/backend/messaging"
	"aquacal/backend/service"
	"aquacal/backend/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var allowedOrigins = []string{"http://localhost:82", "http://aquacal-frontend"}

func init() {
	additionalIPs := os.Getenv("ALLOWED_IPS")
	if additionalIPs != "" {
		for _, ip := range strings.Split(additionalIPs, ",") {
			allowedOrigins = append(allowedOrigins, fmt.Sprintf("http://%s", strings.TrimSpace(ip)))
		}
	} else {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}
}

type Router struct {
	engine  *gin.Engine
	tracker *service.TrackerService
}

func NewRouter() *Router {
	tracker, err := service.NewTrackerService()
	if err != nil {
		panic(fmt.Sprintf("Failed to create tracker service: %v", err))
	}
	return NewRouterWith(tracker)
}

// NewRouterWith builds a router around an existing service instance.
func NewRouterWith(tracker *service.TrackerService) *Router {
	return &Router{
		engine:  gin.Default(),
		tracker: tracker,
	}
}

func (r *Router) SetupAndRunApiServer(port string) {
	r.setupRoutes()
	if err := r.engine.Run(":" + port); err != nil {
		panic(fmt.Sprintf("Failed to run API server: %v", err))
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	r.engine.Use(cors.New(config))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		api.POST("/users/:id/profile", r.setupProfile)
		api.GET("/users/:id/progress", r.getProgress)
		api.GET("/users/:id/history", r.getHistory)
		api.POST("/users/:id/log/water", r.logWater)
		api.POST("/users/:id/log/food", r.logFood)
		api.POST("/users/:id/log/activity", r.logActivity)

		api.GET("/activities", r.getActivities)
		api.GET("/motivation", r.getMotivation)

		api.GET("/foodItems/all", r.getAllFoodItems)
		api.GET("/foodItems/search", r.searchFoodItems)
		api.DELETE("/foodItems/:name", r.deleteFoodItem)

		api.GET("/search", r.searchFood)
		api.GET("/weather", r.getWeather)

		api.GET("/sse", r.handleSSE)
	}
}

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// @Summary Set up a user profile
// @Description Validate the profile, compute daily goals and create or replace the session
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param profile body types.ProfileRequest true "Profile fields"
// @Success 200 {object} types.SetupResponse
// @Failure 400 {object} gin.H
// @Router /users/{id}/profile [post]
func (r *Router) setupProfile(c *gin.Context) {
	var request types.ProfileRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile := types.UserProfile{
		Weight:      request.Weight,
		Height:      request.Height,
		Age:         request.Age,
		ActivityMin: request.ActivityMin,
		City:        request.City,
	}

	goals, err := r.tracker.SetupProfile(c.Param("id"), profile)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	summary, err := r.tracker.GetProgress(c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.SetupResponse{Goals: goals, Summary: summary})
}

// @Summary Get progress
// @Description Get the current water and calorie progress for a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} types.ProgressSummary
// @Failure 404 {object} gin.H
// @Router /users/{id}/progress [get]
func (r *Router) getProgress(c *gin.Context) {
	summary, err := r.tracker.GetProgress(c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Get log history
// @Description Get the accepted log events for a user, oldest first
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} types.IntakeEntry
// @Failure 404 {object} gin.H
// @Router /users/{id}/history [get]
func (r *Router) getHistory(c *gin.Context) {
	history, err := r.tracker.History(c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Log water
// @Description Add a water intake to the user's ledger
// @Tags logging
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body types.LogWaterRequest true "Amount in ml"
// @Success 200 {object} types.WaterLogResult
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /users/{id}/log/water [post]
func (r *Router) logWater(c *gin.Context) {
	var request types.LogWaterRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := r.tracker.LogWater(c.Param("id"), request.AmountMl)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Log food
// @Description Resolve a product through the lookup chain and add its calories
// @Tags logging
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body types.LogFoodRequest true "Product and grams"
// @Success 200 {object} types.FoodLogResult
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Failure 429 {object} gin.H
// @Router /users/{id}/log/food [post]
func (r *Router) logFood(c *gin.Context) {
	var request types.LogFoodRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := r.tracker.LogFood(c.Param("id"), request.Product, request.Grams)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Log activity
// @Description Add burned calories for a known activity
// @Tags logging
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body types.LogActivityRequest true "Activity and minutes"
// @Success 200 {object} types.ActivityLogResult
// @Failure 400 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /users/{id}/log/activity [post]
func (r *Router) logActivity(c *gin.Context) {
	var request types.LogActivityRequest
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := r.tracker.LogActivity(c.Param("id"), request.Activity, request.Minutes)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List activities
// @Description List the known activity names
// @Tags activities
// @Produce json
// @Success 200 {array} string
// @Router /activities [get]
func (r *Router) getActivities(c *gin.Context) {
	c.JSON(http.StatusOK, service.Activities())
}

// @Summary Get a motivation quote
// @Tags motivation
// @Produce json
// @Success 200 {object} gin.H
// @Router /motivation [get]
func (r *Router) getMotivation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quote": service.RandomQuote()})
}

// @Summary List the food catalog
// @Description List all products resolved so far
// @Tags foodItems
// @Produce json
// @Success 200 {array} data.FoodItem
// @Failure 500 {object} gin.H
// @Router /foodItems/all [get]
func (r *Router) getAllFoodItems(c *gin.Context) {
	items, err := data.GetAllFoodItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load food catalog"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Search the food catalog
// @Tags foodItems
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} data.FoodItem
// @Failure 400 {object} gin.H
// @Router /foodItems/search [get]
func (r *Router) searchFoodItems(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	items, err := data.SearchFoodItems(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search food catalog"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Delete a catalog entry
// @Tags foodItems
// @Produce json
// @Param name path string true "Normalized product name"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /foodItems/{name} [delete]
func (r *Router) deleteFoodItem(c *gin.Context) {
	if err := data.DeleteFoodItem(service.NormalizeKey(c.Param("name"))); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item deleted successfully"})
}

// @Summary Look up a product
// @Description Resolve a product through cache, catalog, limiter and provider
// @Tags search
// @Produce json
// @Param q query string true "Product name"
// @Success 200 {object} types.FoodInfo
// @Failure 404 {object} gin.H
// @Failure 429 {object} gin.H
// @Router /search [get]
func (r *Router) searchFood(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	info, err := r.tracker.SearchFood(query)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// @Summary Get current weather
// @Description Resolve the current temperature for a city through cache and limiter
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} gin.H
// @Failure 404 {object} gin.H
// @Failure 429 {object} gin.H
// @Router /weather [get]
func (r *Router) getWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "City is required"})
		return
	}

	temperature, err := r.tracker.CurrentWeather(city)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city, "temperature_c": temperature})
}

// @Summary Subscribe to progress events
// @Description Server-sent event stream of profile and progress changes
// @Tags events
// @Produce text/event-stream
// @Router /sse [get]
func (r *Router) handleSSE(c *gin.Context) {
	client := make(chan string, 10)
	messaging.AddSSEClient(client)
	defer messaging.RemoveSSEClient(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
