package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-ranker/internal/logging"
	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/repositories"
	"alfredoptarigan/cv-ranker/internal/services"
)

type CVHandler struct {
	cvRepo         repositories.CVRepository
	storageService services.StorageService
	maxFileSize    int64
	log            *logging.Logger
}

func NewCVHandler(
	cvRepo repositories.CVRepository,
	storageService services.StorageService,
	maxFileSize int64,
	log *logging.Logger,
) *CVHandler {
	return &CVHandler{
		cvRepo:         cvRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// HandleUpload handles POST /cv/upload-cv with one or more "cvs" parts.
// A file whose original name is already stored is skipped.
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["cvs"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CV files uploaded",
		})
	}

	for _, file := range files {
		if !services.IsAllowedExtension(file.Filename) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s: only .pdf, .docx and .txt files are allowed", file.Filename),
			})
		}
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}
	}

	saved := make([]models.CVRecord, 0, len(files))
	var skipped []string

	for _, file := range files {
		_, err := h.cvRepo.FindByOriginalFilename(file.Filename)
		if err == nil {
			h.log.Info("duplicate cv upload skipped", "file", file.Filename)
			skipped = append(skipped, file.Filename)
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		filename, _, err := h.storageService.SaveFile(file, "cv")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save CV file: %v", err),
			})
		}

		cv := models.CVRecord{
			ID:               uuid.New(),
			Filename:         filename,
			OriginalFilename: file.Filename,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.cvRepo.Create(&cv); err != nil {
			// Cleanup uploaded file if database insert fails
			if delErr := h.storageService.DeleteFile(filename); delErr != nil {
				h.log.Warn("failed to remove orphaned cv file", "file", filename, "err", delErr)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save CV record: %v", err),
			})
		}

		saved = append(saved, cv)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CVUploadResponse{
		Status:   "success",
		Message:  "CVs uploaded successfully",
		Uploaded: len(saved),
		Skipped:  skipped,
		Files:    saved,
	})
}

// HandleList handles GET /cv/all
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	cvs, err := h.cvRepo.FindAll()
	if err != nil {
		return err
	}

	base := fmt.Sprintf("%s://%s/uploads/", c.Protocol(), c.Hostname())

	files := make([]models.CVListItem, 0, len(cvs))
	for _, cv := range cvs {
		files = append(files, models.CVListItem{
			ID:           cv.ID.String(),
			OriginalName: cv.OriginalFilename,
			Link:         base + cv.Filename,
			CreatedAt:    cv.CreatedAt,
		})
	}

	return c.JSON(models.CVListResponse{
		Status: "success",
		Total:  len(files),
		Files:  files,
	})
}

// HandleDeleteAll handles DELETE /cv/delete-all. Missing backing files are
// not an error.
func (h *CVHandler) HandleDeleteAll(c *fiber.Ctx) error {
	cvs, err := h.cvRepo.FindAll()
	if err != nil {
		return err
	}

	for _, cv := range cvs {
		if err := h.storageService.DeleteFile(cv.Filename); err != nil && !errors.Is(err, services.ErrFileNotFound) {
			h.log.Warn("failed to delete cv file", "file", cv.Filename, "err", err)
		}
	}

	deleted, err := h.cvRepo.DeleteAll()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "All CVs deleted",
		"deleted": deleted,
	})
}
