// Package http provides the HTTP handler layer for the flight ticket API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes.
func RegisterRoutes(e *echo.Echo, flights *FlightHandler, airlines *AirlineHandler) {
	e.GET("/", flights.Root)
	e.GET("/health", flights.Health)

	api := e.Group("/api")
	api.GET("/hello", flights.Hello)

	api.GET("/flight", flights.QuickSearch)
	api.POST("/flight/search", flights.SearchFlights)

	api.GET("/tiger/search", airlines.SearchTiger)
	api.GET("/scoot/search", airlines.SearchScoot)
	api.GET("/scoot/hello", airlines.HelloScoot)
}

// RegisterWebhook attaches the LINE webhook endpoint. It is separate from
// RegisterRoutes so the webhook can be left unregistered when channel
// credentials are missing.
func RegisterWebhook(e *echo.Echo, webhook echo.HandlerFunc) {
	e.POST("/api/line/webhook", webhook)
}
