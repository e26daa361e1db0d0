package handler

import "github.com/gin-gonic/gin"

// Handlers bundles the route handlers registered under the API prefix.
type Handlers struct {
	Schedules    *ScheduleHandler
	Appointments *AppointmentHandler
	Views        *ViewHandler
	Preferences  *PreferenceHandler
	Exports      *ExportHandler
}

// RegisterRoutes mounts all schedule routes on the given router group.
// Exports is optional and mounted only when enabled.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	schedules := api.Group("/schedules")
	schedules.POST("", h.Schedules.Create)
	schedules.GET("/:id", h.Schedules.Get)
	schedules.DELETE("/:id", h.Schedules.Delete)

	schedules.GET("/:id/appointments", h.Appointments.List)
	schedules.POST("/:id/appointments", h.Appointments.Book)
	schedules.DELETE("/:id/appointments", h.Appointments.DeleteAll)

	schedules.GET("/:id/view", h.Views.Get)

	schedules.GET("/:id/preferences", h.Preferences.Get)
	schedules.PUT("/:id/preferences", h.Preferences.Save)

	if h.Exports != nil {
		schedules.GET("/:id/export", h.Exports.Export)
	}
}
