package services

import (
	"context"
	"sync"

	"alfredoptarigan/cv-ranker/internal/logging"
	"alfredoptarigan/cv-ranker/internal/models"
)

// EvaluateFunc scores one CV. ok is false when the CV must be left out of
// the ranking.
type EvaluateFunc func(ctx context.Context, cv models.CVRecord) (row models.RankedCandidate, ok bool)

// Worker fans CV evaluations out over a fixed number of goroutines.
type Worker interface {
	Run(ctx context.Context, cvs []models.CVRecord, evaluate EvaluateFunc) []models.RankedCandidate
}

type worker struct {
	concurrency int
	log         *logging.Logger
}

func NewWorker(concurrency int, log *logging.Logger) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		concurrency: concurrency,
		log:         log,
	}
}

// Run implements Worker. Rows come back in completion order; callers sort.
// Once ctx is done no further CVs are started.
func (w *worker) Run(ctx context.Context, cvs []models.CVRecord, evaluate EvaluateFunc) []models.RankedCandidate {
	jobQueue := make(chan models.CVRecord)
	results := make(chan models.RankedCandidate, len(cvs))

	workers := w.concurrency
	if workers > len(cvs) {
		workers = len(cvs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go w.processJobs(ctx, i+1, jobQueue, results, evaluate, &wg)
	}

	go func() {
		defer close(jobQueue)
		for _, cv := range cvs {
			select {
			case jobQueue <- cv:
			case <-ctx.Done():
				w.log.Warn("ranking cancelled before all CVs were queued", "err", ctx.Err())
				return
			}
		}
	}()

	wg.Wait()
	close(results)

	rows := make([]models.RankedCandidate, 0, len(cvs))
	for row := range results {
		rows = append(rows, row)
	}
	return rows
}

func (w *worker) processJobs(
	ctx context.Context,
	workerID int,
	jobQueue <-chan models.CVRecord,
	results chan<- models.RankedCandidate,
	evaluate EvaluateFunc,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for cv := range jobQueue {
		w.log.Debug("evaluating cv", "worker", workerID, "file", cv.OriginalFilename)
		if row, ok := evaluate(ctx, cv); ok {
			results <- row
		}
	}
}
