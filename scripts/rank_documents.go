package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"alfredoptarigan/cv-ranker/internal/logging"
	"alfredoptarigan/cv-ranker/internal/models"
	"alfredoptarigan/cv-ranker/internal/repositories"
	"alfredoptarigan/cv-ranker/internal/services"
)

type options struct {
	jdPath      string
	cvDir       string
	strategy    string
	concurrency int
	timeout     time.Duration
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rank_documents",
		Short: "Rank a directory of CVs against a job description file",
		Long: "Ranks every .pdf, .docx and .txt file in --cvs against the job description " +
			"in --jd without a database, and prints the ranking as JSON.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.jdPath, "jd", "", "job description file (.pdf, .docx or .txt)")
	cmd.Flags().StringVar(&opts.cvDir, "cvs", "", "directory containing CV files")
	cmd.Flags().StringVar(&opts.strategy, "match", services.MatchStrategySubstring, "skill match strategy: substring or word")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "number of CVs processed in parallel")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-document read timeout")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level")
	_ = cmd.MarkFlagRequired("jd")
	_ = cmd.MarkFlagRequired("cvs")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.New(opts.logLevel)
	defer func() { _ = log.Sync() }()

	matcher, err := services.NewMatcher(opts.strategy)
	if err != nil {
		return err
	}

	extractor := services.NewTextExtractor(opts.timeout, log)

	jdText := extractor.ExtractFile(ctx, opts.jdPath).Text
	if jdText == "" {
		log.Warn("job description is empty or unreadable", "path", opts.jdPath)
	}
	jdRepo := repositories.NewMemoryJobDescriptionRepository(models.JobDescription{
		ID:          uuid.New(),
		Description: &jdText,
		CreatedAt:   time.Now(),
	})

	cvs, err := collectCVs(opts.cvDir)
	if err != nil {
		return err
	}
	cvRepo := repositories.NewMemoryCVRepository(cvs...)

	stopwords := services.NewStopwords(services.DefaultStopwords())
	ranker := services.NewRankerService(
		jdRepo,
		cvRepo,
		services.NewStorageService(opts.cvDir),
		extractor,
		services.NewSkillExtractor(services.NewProseTagger(), stopwords),
		services.NewCandidateExtractor(),
		services.NewScorer(stopwords, matcher),
		services.NewWorker(opts.concurrency, log),
		log,
	)

	ranking, err := ranker.Rank(ctx)
	if err != nil {
		return err
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(models.RankResponse{
		Status:          "success",
		TotalCandidates: ranking.Total,
		Message:         "CVs ranked against " + filepath.Base(opts.jdPath),
		Results:         ranking.Candidates,
	})
}

func collectCVs(dir string) ([]models.CVRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cv directory: %w", err)
	}

	var cvs []models.CVRecord
	for _, entry := range entries {
		if entry.IsDir() || !services.IsAllowedExtension(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		cvs = append(cvs, models.CVRecord{
			ID:               uuid.New(),
			Filename:         entry.Name(),
			OriginalFilename: entry.Name(),
			CreatedAt:        info.ModTime(),
		})
	}

	sort.Slice(cvs, func(i, j int) bool { return cvs[i].Filename < cvs[j].Filename })
	return cvs, nil
}
