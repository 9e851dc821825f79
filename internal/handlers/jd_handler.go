package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-ranker/internal/logging"
	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/repositories"
	"alfredoptarigan/cv-ranker/internal/services"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type JobDescriptionHandler struct {
	jdRepo         repositories.JobDescriptionRepository
	storageService services.StorageService
	maxFileSize    int64
	log            *logging.Logger
}

func NewJobDescriptionHandler(
	jdRepo repositories.JobDescriptionRepository,
	storageService services.StorageService,
	maxFileSize int64,
	log *logging.Logger,
) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		jdRepo:         jdRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// HandleCreate handles POST /jobDescription/jd. Accepts a "description"
// field (JSON or form), a "file" part, or both.
func (h *JobDescriptionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobDescriptionRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	description := strings.TrimSpace(req.Description)

	// FormFile fails for non-multipart bodies; that just means no file
	file, _ := c.FormFile("file")

	if description == "" && file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job description text or file is required",
		})
	}

	jd := &models.JobDescription{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if description != "" {
		_, err := h.jdRepo.FindByDescription(description)
		if err == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Job description already exists",
			})
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		jd.Description = &description
	}

	if file != nil {
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Job description file too large. Max size: %d bytes", h.maxFileSize),
			})
		}

		filename, _, err := h.storageService.SaveFile(file, "jd")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save job description file: %v", err),
			})
		}
		original := file.Filename
		jd.Filename = &filename
		jd.OriginalFilename = &original
	}

	if err := h.jdRepo.Create(jd); err != nil {
		if jd.Filename != nil {
			if delErr := h.storageService.DeleteFile(*jd.Filename); delErr != nil {
				h.log.Warn("failed to remove orphaned job description file", "file", *jd.Filename, "err", delErr)
			}
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.JobDescriptionResponse{
		Status:  "success",
		Message: "Job description created successfully",
		JobDes:  jd,
	})
}

// HandleList handles GET /jobDescription/jd?page=&limit=
func (h *JobDescriptionHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	startIndex := (page - 1) * limit
	endIndex := page * limit

	total, err := h.jdRepo.Count()
	if err != nil {
		return err
	}

	jds, err := h.jdRepo.List(startIndex, limit)
	if err != nil {
		return err
	}

	var pagination models.Pagination
	if int64(endIndex) < total {
		pagination.Next = &models.PageRef{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		pagination.Prev = &models.PageRef{Page: page - 1, Limit: limit}
	}

	return c.JSON(models.JobDescriptionListResponse{
		Status:          "success",
		Total:           total,
		Result:          len(jds),
		Pagination:      pagination,
		Message:         "Job descriptions fetched successfully",
		JobDescriptions: jds,
	})
}
