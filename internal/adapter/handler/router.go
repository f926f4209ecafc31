package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	httpmw "github.com/johnquangdev/telehealth-assistant/internal/infrastructure/http/middleware"
)

// Router holds all handlers
type Router struct {
	health      *Health
	assistant   *Assistant
	appointment *Appointment
	symptom     *Symptom
	alert       *Alert
	webhook     *WebhookHandler
	authMW      echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	health *Health,
	assistant *Assistant,
	appointment *Appointment,
	symptom *Symptom,
	alert *Alert,
	webhook *WebhookHandler,
	authMW echo.MiddlewareFunc,
) *Router {
	return &Router{
		health:      health,
		assistant:   assistant,
		appointment: appointment,
		symptom:     symptom,
		alert:       alert,
		webhook:     webhook,
		authMW:      authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.health.Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// Signed by their senders, no bearer token
	rt.setupWebhookRoutes(v1)

	rt.setupAssistantRoutes(v1)
	rt.setupAppointmentRoutes(v1)
	rt.setupSymptomRoutes(v1)
	rt.setupAlertRoutes(v1)
}

func (rt *Router) setupAssistantRoutes(g *echo.Group) {
	ag := g.Group("/assistant", rt.authMW)
	ag.POST("/commands", rt.assistant.Command)
	ag.POST("/commands/audio", rt.assistant.AudioCommand)
	ag.POST("/classify", rt.assistant.Classify)
	ag.POST("/symptoms/analyze", rt.assistant.AnalyzeSymptoms)
	ag.POST("/medications/reminders", rt.assistant.SetMedicationReminder)
}

func (rt *Router) setupAppointmentRoutes(g *echo.Group) {
	doctorOnly := httpmw.RequireRole(entities.RoleDoctor)

	ag := g.Group("/appointments", rt.authMW)
	ag.GET("", rt.appointment.List)
	ag.GET("/:id", rt.appointment.Get)
	ag.PATCH("/:id/status", rt.appointment.UpdateStatus)
	ag.POST("/:id/call/start", rt.appointment.StartCall)
	ag.POST("/:id/call/end", rt.appointment.EndCall)
	ag.POST("/:id/summary", rt.appointment.Summarize, doctorOnly)
	ag.GET("/:id/summary", rt.appointment.GetSummary)
}

func (rt *Router) setupSymptomRoutes(g *echo.Group) {
	g.GET("/symptoms", rt.symptom.List, rt.authMW)
}

func (rt *Router) setupAlertRoutes(g *echo.Group) {
	doctorOnly := httpmw.RequireRole(entities.RoleDoctor)

	ag := g.Group("/alerts", rt.authMW)
	ag.GET("", rt.alert.List, doctorOnly)
	ag.POST("", rt.alert.Raise)
	ag.POST("/:id/resolve", rt.alert.Resolve, doctorOnly)
	ag.GET("/stream", rt.alert.Stream, doctorOnly)
}

func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	wg := g.Group("/webhooks")
	wg.POST("/livekit", rt.webhook.HandleLiveKitWebhook)
	wg.POST("/voice", rt.webhook.HandleVoiceWebhook)
}
