package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/cy-weather-api/internal/scheduler"
	"github.com/i474232898/cy-weather-api/internal/weather"
)

// User-facing error details.
const (
	msgCityNotFound    = "Ville non trouvée"
	msgConnectionError = "Erreur de connexion à l'API météo"
	msgInvalidUpstream = "Réponse invalide de l'API météo"
	msgInternal        = "Erreur interne du serveur"
	msgInvalidQuery    = "Paramètres de requête invalides"
	msgCityRequired    = "Le paramètre 'city' est requis"
	msgCountryCode     = "Le paramètre 'country_code' doit être un code pays ISO à 2 lettres"
)

var validate = validator.New()

// WeatherService is what the routes need from weather.Service.
type WeatherService interface {
	GetCurrentWeather(ctx context.Context, city, countryCode string) (*weather.WeatherResponse, error)
	GetForecast(ctx context.Context, city, countryCode string) (*weather.ForecastResponse, error)
}

// ReadinessReporter exposes the latest upstream probe.
type ReadinessReporter interface {
	Status() scheduler.Status
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Ville non trouvée"`
}

// HealthResponse is the liveness answer.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type handlers struct {
	service WeatherService
	probe   ReadinessReporter
	timeout time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app under /api.
// probe may be nil, in which case /api/health/ready is not registered.
func RegisterRoutes(app *fiber.App, service WeatherService, probe ReadinessReporter, timeout time.Duration) {
	h := &handlers{service: service, probe: probe, timeout: timeout}
	api := app.Group("/api")

	api.Get("/health", h.Health)
	if probe != nil {
		api.Get("/health/ready", h.Ready)
	}
	api.Get("/weather/current", h.CurrentWeather)
	api.Get("/weather/forecast", h.Forecast)
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *handlers) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Upstream readiness
// @Description Outcome of the latest geocoding probe
// @Tags Health
// @Produce json
// @Success 200 {object} scheduler.Status
// @Failure 503 {object} scheduler.Status
// @Router /health/ready [get]
func (h *handlers) Ready(c *fiber.Ctx) error {
	st := h.probe.Status()
	code := fiber.StatusOK
	if !st.Ready {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(st)
}

// CurrentWeather godoc
// @Summary Météo actuelle
// @Description Conditions actuelles pour une ville
// @Tags Weather
// @Produce json
// @Param city query string true "Nom de la ville"
// @Param country_code query string false "Code pays ISO 3166-1 alpha-2"
// @Success 200 {object} weather.WeatherResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /weather/current [get]
func (h *handlers) CurrentWeather(c *fiber.Ctx) error {
	q, err := parseLocationQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, validationDetail(err))
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	resp, err := h.service.GetCurrentWeather(ctx, q.City, q.CountryCode)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(resp)
}

// Forecast godoc
// @Summary Prévisions météo
// @Description Prévisions quotidiennes sur 7 jours pour une ville
// @Tags Weather
// @Produce json
// @Param city query string true "Nom de la ville"
// @Param country_code query string false "Code pays ISO 3166-1 alpha-2"
// @Success 200 {object} weather.ForecastResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /weather/forecast [get]
func (h *handlers) Forecast(c *fiber.Ctx) error {
	q, err := parseLocationQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, validationDetail(err))
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	resp, err := h.service.GetForecast(ctx, q.City, q.CountryCode)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(resp)
}

// ErrorHandler renders every error as {"detail": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := msgInternal

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(ErrorResponse{Detail: msg})
}

// mapServiceError translates the service error taxonomy into HTTP errors.
func mapServiceError(err error) error {
	var (
		notFound  *weather.NotFoundError
		shape     *weather.DataShapeError
		transport *weather.UpstreamTransportError
	)

	switch {
	case errors.As(err, &notFound):
		return fiber.NewError(fiber.StatusNotFound, msgCityNotFound)
	case errors.Is(err, weather.ErrInvalidQuery):
		return fiber.NewError(fiber.StatusUnprocessableEntity, msgInvalidQuery)
	case errors.As(err, &shape):
		return fiber.NewError(fiber.StatusInternalServerError, msgInvalidUpstream)
	case errors.As(err, &transport):
		return fiber.NewError(fiber.StatusInternalServerError, msgConnectionError)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, msgInternal)
	}
}

// locationQuery holds query parameters for identifying a place.
type locationQuery struct {
	City        string `validate:"required"`
	CountryCode string `validate:"omitempty,len=2,alpha"`
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = strings.TrimSpace(c.Query("city"))
	q.CountryCode = strings.ToUpper(strings.TrimSpace(c.Query("country_code")))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// validationDetail turns validator errors into client-facing messages, one per field.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgInvalidQuery
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "City":
			msgs = append(msgs, msgCityRequired)
		case "CountryCode":
			msgs = append(msgs, msgCountryCode)
		default:
			msgs = append(msgs, msgInvalidQuery)
		}
	}
	return strings.Join(msgs, "; ")
}

func requestContext(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), timeout)
}
