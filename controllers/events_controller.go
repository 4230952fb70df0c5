package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	models "github.com/devevent/devevent-go/models"
	repository "github.com/devevent/devevent-go/repository"
	services "github.com/devevent/devevent-go/services"
	utils "github.com/devevent/devevent-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(events *repository.EventRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Title       string `form:"title"`
			Description string `form:"description"`
			Overview    string `form:"overview"`
			Venue       string `form:"venue"`
			Location    string `form:"location"`
			Date        string `form:"date"`
			Time        string `form:"time"`
			Mode        string `form:"mode"`
			Audience    string `form:"audience"`
			Organizer   string `form:"organizer"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}

		// agenda and tags arrive either as repeated fields or as a single
		// JSON-encoded array; any client-supplied slug is ignored.
		agenda := arrayField(form.Value["agenda"])
		tags := arrayField(form.Value["tags"])

		// --- Upload banner image ---
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}

		imageURL, err := utils.UploadToCloudinary(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "image upload failed",
				"details": err.Error(),
				"file":    fileHeader.Filename,
			})
			return
		}

		// --- Save event ---
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		event, err := events.Create(ctx, models.EventInput{
			Title:       input.Title,
			Description: input.Description,
			Overview:    input.Overview,
			Image:       imageURL,
			Venue:       input.Venue,
			Location:    input.Location,
			Date:        input.Date,
			Time:        input.Time,
			Mode:        input.Mode,
			Audience:    input.Audience,
			Organizer:   input.Organizer,
			Agenda:      agenda,
			Tags:        tags,
		})
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			case errors.Is(err, models.ErrInvalidDate), errors.Is(err, models.ErrInvalidTime):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, models.ErrDuplicateSlug):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Event created successfully",
			"event":   event,
		})
	}
}

// ---------------- LIST ----------------
func ListEvents(queries *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, errPage := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, errLimit := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if errPage != nil || errLimit != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		feed, err := queries.GetEventFeed(ctx, page, limit)
		if err != nil {
			if errors.Is(err, models.ErrInvalidPagination) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Events fetched successfully",
			"events":     feed.Events,
			"pagination": feed.Pagination,
		})
	}
}

// ---------------- GET ----------------
func GetEvent(events *repository.EventRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		event, err := events.FindBySlug(ctx, c.Param("slug"))
		if err != nil {
			if errors.Is(err, models.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch event"})
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", event.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- SIMILAR ----------------
func GetSimilarEvents(queries *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c.JSON(http.StatusOK, gin.H{
			"events": queries.GetSimilarEvents(ctx, c.Param("slug")),
		})
	}
}

// arrayField decodes a sequence submitted either as repeated form fields or
// as a single JSON-encoded array. A value that fails to parse as JSON falls
// back to repeated-field semantics.
func arrayField(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}
