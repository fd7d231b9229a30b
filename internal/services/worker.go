package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/david210690/futura-hire-ai-sub000/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(reportID uuid.UUID)
}

type worker struct {
	reportRepo      repositories.ReportRepository
	insightsService InsightsService
	jobQueue        chan uuid.UUID
	concurrency     int
	wg              sync.WaitGroup
	stopChan        chan struct{}
}

func NewWorker(
	reportRepo repositories.ReportRepository,
	insightsService InsightsService,
	concurrency int,
) Worker {
	return &worker{
		reportRepo:      reportRepo,
		insightsService: insightsService,
		jobQueue:        make(chan uuid.UUID, 100),
		concurrency:     concurrency,
		stopChan:        make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	// Start worker goroutines
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Start polling for pending reports
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(reportID uuid.UUID) {
	select {
	case w.jobQueue <- reportID:
		log.Printf("📥 Report %s enqueued\n", reportID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue report %s\n", reportID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing reports\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case reportID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing report %s\n", workerID, reportID)
			if err := w.insightsService.GenerateReport(ctx, reportID); err != nil {
				log.Printf("❌ Worker #%d failed to process report %s: %v\n", workerID, reportID, err)
			} else {
				log.Printf("✅ Worker #%d completed report %s\n", workerID, reportID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending reports poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending reports poller stopped")
			return
		case <-ticker.C:
			// Re-enqueue reports that never left the queued state, e.g.
			// after a restart
			pendingJobs, err := w.reportRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending reports: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending reports\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
