package cronjob

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	syncsvc "github.com/krib-platform/super-admin-backend/internal/sync"
)

// Scheduler runs full sync passes on a cron schedule.
type Scheduler struct {
	service    *syncsvc.Service
	schedule   string
	runTimeout time.Duration
	cron       *cron.Cron
}

func NewScheduler(service *syncsvc.Service, schedule string, runTimeout time.Duration) *Scheduler {
	return &Scheduler{
		service:    service,
		schedule:   schedule,
		runTimeout: runTimeout,
	}
}

// Start registers the sync job. Schedule uses cron-with-seconds syntax,
// e.g. "0 0 2 * * *" for 2:00 AM nightly.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.schedule, func() {
		s.runOnce()
	})
	if err != nil {
		log.Printf("Failed to create sync cron job: %v", err)
		return
	}

	log.Printf("Sync scheduler started (schedule %q)", s.schedule)
	c.Start()
	s.cron = c
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) runOnce() {
	log.Println("Scheduled sync run started...")

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	report := s.service.SyncAll(ctx)

	summary, _ := json.Marshal(report)
	log.Printf("Scheduled sync run completed at %s: %s", time.Now().Format(time.RFC1123), summary)
}
