package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	models "github.com/devevent/devevent-go/models"
	repository "github.com/devevent/devevent-go/repository"
	services "github.com/devevent/devevent-go/services"
)

// ---------------- CREATE ----------------
func CreateBooking(bookings *repository.BookingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			EventID string `json:"event_id"`
			Slug    string `json:"slug"`
			Email   string `json:"email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		booking, err := bookings.Create(ctx, input.EventID, input.Slug, input.Email)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.As(err, &vErr),
				errors.Is(err, models.ErrInvalidEmail),
				errors.Is(err, models.ErrBookingEventNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not create booking"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"booking": booking,
		})
	}
}

// ---------------- COUNT ----------------
func GetBookingCount(queries *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slug := c.Param("slug")
		c.JSON(http.StatusOK, gin.H{
			"slug":  slug,
			"count": queries.GetBookingCount(ctx, slug),
		})
	}
}
