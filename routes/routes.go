package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/devevent/devevent-go/config"
	controllers "github.com/devevent/devevent-go/controllers"
	repository "github.com/devevent/devevent-go/repository"
	services "github.com/devevent/devevent-go/services"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	events := repository.NewEventRepository(cfg)
	bookings := repository.NewBookingRepository(cfg, events)
	queries := services.NewQueryService(events, bookings)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	eventRoutes := r.Group("/events")
	{
		eventRoutes.POST("", controllers.CreateEvent(events))
		eventRoutes.GET("", controllers.ListEvents(queries))
		eventRoutes.GET("/:slug", controllers.GetEvent(events))
		eventRoutes.GET("/:slug/similar", controllers.GetSimilarEvents(queries))
		eventRoutes.GET("/:slug/bookings/count", controllers.GetBookingCount(queries))
	}

	r.POST("/bookings", controllers.CreateBooking(bookings))
}
