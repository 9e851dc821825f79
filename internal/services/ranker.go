package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"alfredoptarigan/cv-ranker/internal/logging"
	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/repositories"
)

const listSeparator = ", "

type RankerService interface {
	Rank(ctx context.Context) (*models.Ranking, error)
}

type rankerService struct {
	jdRepo     repositories.JobDescriptionRepository
	cvRepo     repositories.CVRepository
	storage    StorageService
	extractor  TextExtractor
	skills     SkillExtractor
	candidates CandidateExtractor
	scorer     Scorer
	worker     Worker
	log        *logging.Logger
}

func NewRankerService(
	jdRepo repositories.JobDescriptionRepository,
	cvRepo repositories.CVRepository,
	storage StorageService,
	extractor TextExtractor,
	skills SkillExtractor,
	candidates CandidateExtractor,
	scorer Scorer,
	worker Worker,
	log *logging.Logger,
) RankerService {
	return &rankerService{
		jdRepo:     jdRepo,
		cvRepo:     cvRepo,
		storage:    storage,
		extractor:  extractor,
		skills:     skills,
		candidates: candidates,
		scorer:     scorer,
		worker:     worker,
		log:        log,
	}
}

// Rank scores every stored CV against the most recent job description.
// A missing job description, an empty CV collection or a cancelled ctx
// fails the request; unreadable CVs are logged and left out.
func (r *rankerService) Rank(ctx context.Context) (*models.Ranking, error) {
	jd, err := r.jdRepo.FindLatest()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoJobDescription
		}
		return nil, fmt.Errorf("failed to load job description: %w", err)
	}

	jdText := r.jobDescriptionText(ctx, jd)
	skills := r.skills.Extract(jdText)
	if skills.Len() == 0 {
		r.log.Warn("job description yielded no skills, scores will be bonus only", "jd_id", jd.ID)
	}

	cvs, err := r.cvRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load cvs: %w", err)
	}
	if len(cvs) == 0 {
		return nil, ErrNoCVs
	}

	jdSkills := skills.Sorted()
	rows := r.worker.Run(ctx, cvs, func(ctx context.Context, cv models.CVRecord) (models.RankedCandidate, bool) {
		return r.evaluateCV(ctx, cv, skills, jdSkills)
	})

	// a cancelled run has an incomplete row set; never report it as a ranking
	if err := ctx.Err(); err != nil {
		r.log.Warn("ranking cancelled", "evaluated", len(rows), "stored_cvs", len(cvs), "err", err)
		return nil, fmt.Errorf("ranking cancelled: %w", err)
	}

	SortRanked(rows)

	r.log.Info("ranking completed",
		"jd_id", jd.ID,
		"jd_skills", len(jdSkills),
		"stored_cvs", len(cvs),
		"ranked", len(rows),
	)

	return &models.Ranking{
		Candidates: rows,
		Total:      len(rows),
	}, nil
}

func (r *rankerService) jobDescriptionText(ctx context.Context, jd *models.JobDescription) string {
	if text := jd.LiteralText(); text != "" {
		return text
	}

	filename := jd.StoredFilename()
	if filename == "" {
		r.log.Warn("job description has neither text nor document", "jd_id", jd.ID)
		return ""
	}

	return r.extractor.ExtractFile(ctx, r.storage.GetFilePath(filename)).Text
}

// evaluateCV is free of shared state so it can run on any worker.
func (r *rankerService) evaluateCV(ctx context.Context, cv models.CVRecord, skills SkillSet, jdSkills []string) (models.RankedCandidate, bool) {
	doc := r.extractor.ExtractFile(ctx, r.storage.GetFilePath(cv.Filename))
	if doc.Empty() {
		r.log.Warn("skipping cv with no readable text", "file", cv.OriginalFilename, "stored_as", cv.Filename)
		return models.RankedCandidate{}, false
	}

	details := r.candidates.Extract(doc.Lines, cv.OriginalFilename)
	score := r.scorer.Score(doc.Text, skills)

	return models.RankedCandidate{
		CandidateFile: cv.OriginalFilename,
		Name:          details.Name,
		Email:         details.Email,
		Phone:         details.Phone,
		Score:         score.Score,
		BonusPoints:   score.Bonus,
		BonusReasons:  strings.Join(score.Reasons, reasonJoinSep),
		MatchedSkills: strings.Join(score.Matched, listSeparator),
		MissingSkills: strings.Join(score.Missing, listSeparator),
		JDSkills:      strings.Join(jdSkills, listSeparator),
	}, true
}

// SortRanked orders rows by score, highest first. Equal scores fall back to
// the original filename so repeated runs agree.
func SortRanked(rows []models.RankedCandidate) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].CandidateFile < rows[j].CandidateFile
	})
}
