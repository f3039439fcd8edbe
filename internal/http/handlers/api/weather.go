package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/weather"

	"github.com/gin-gonic/gin"
)

const (
	maxPostalCodeLen = 10
	maxCountryLen    = 3
)

// GetWeather looks up current weather for a postal code and country.
// The provider payload is passed through unchanged.
func (h *Handler) GetWeather(c *gin.Context) {
	postalCode := strings.TrimSpace(c.Query("postal_code"))
	country := strings.TrimSpace(c.Query("country"))

	fields := map[string]string{}
	if postalCode == "" {
		fields["postal_code"] = "This field is required."
	} else if len(postalCode) > maxPostalCodeLen {
		fields["postal_code"] = "Ensure this field has no more than 10 characters."
	}
	if country == "" {
		fields["country"] = "This field is required."
	} else if len(country) > maxCountryLen {
		fields["country"] = "Ensure this field has no more than 3 characters."
	}
	if len(fields) > 0 {
		response.ValidationFailed(c, fields)
		return
	}

	payload, err := h.WeatherService.GetWeather(c.Request.Context(), postalCode, country)
	if err != nil {
		if errors.Is(err, weather.ErrLookupFailed) {
			// Upstream details stay in the log, the caller sees one
			// uniform validation error.
			response.BadRequest(c, "Error in getting weather data")
			return
		}
		response.Internal(c, "internal error")
		return
	}
	c.JSON(http.StatusOK, payload)
}
