package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/services"
)

type fakeRanker struct {
	ranking *models.Ranking
	err     error
}

func (f fakeRanker) Rank(context.Context) (*models.Ranking, error) {
	return f.ranking, f.err
}

func newRankApp(ranker services.RankerService) *fiber.App {
	app := fiber.New()
	app.Get("/rank-cvs", NewRankHandler(ranker).HandleRank)
	return app
}

func TestHandleRank_Success(t *testing.T) {
	app := newRankApp(fakeRanker{ranking: &models.Ranking{
		Candidates: []models.RankedCandidate{
			{CandidateFile: "alice.pdf", Score: 100, MatchedSkills: "python, sql", BonusReasons: ""},
			{CandidateFile: "bob.pdf", Score: 50},
		},
		Total: 2,
	}})

	var body map[string]any
	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/rank-cvs", nil), &body)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["totalCandidates"])
	assert.Equal(t, "CVs ranked against latest JD", body["message"])

	results := body["results"].([]any)
	first := results[0].(map[string]any)
	assert.Equal(t, "alice.pdf", first["CandidateFile"])
	assert.Equal(t, float64(100), first["Score"])
	assert.Equal(t, "python, sql", first["MatchedSkills"])
	assert.Contains(t, first, "BonusPoints")
	assert.Contains(t, first, "JDSkills")
}

func TestHandleRank_NotFound(t *testing.T) {
	for _, err := range []error{services.ErrNoJobDescription, services.ErrNoCVs} {
		app := newRankApp(fakeRanker{err: err})

		var body models.MessageResponse
		status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/rank-cvs", nil), &body)

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, err.Error(), body.Message)
	}
}

func TestHandleRank_InternalError(t *testing.T) {
	app := newRankApp(fakeRanker{err: errors.New("database unavailable")})

	status := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/rank-cvs", nil), nil)

	assert.Equal(t, fiber.StatusInternalServerError, status)
}
