package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/services"
)

type RankHandler struct {
	ranker services.RankerService
}

func NewRankHandler(ranker services.RankerService) *RankHandler {
	return &RankHandler{
		ranker: ranker,
	}
}

// HandleRank handles GET /rank-cvs
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	ranking, err := h.ranker.Rank(c.UserContext())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.MessageResponse{
				Message: err.Error(),
			})
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(models.RankResponse{
		Status:          "success",
		TotalCandidates: ranking.Total,
		Message:         "CVs ranked against latest JD",
		Results:         ranking.Candidates,
	})
}
