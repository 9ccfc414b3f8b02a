package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

type ReportSnapshotService interface {
	Snapshot(ctx context.Context, at time.Time) (string, error)
}

// ReportSnapshotter archives a copy of the company report on a fixed interval.
type ReportSnapshotter struct {
	reports  ReportSnapshotService
	interval time.Duration
}

func NewReportSnapshotter(reports ReportSnapshotService, interval time.Duration) *ReportSnapshotter {
	return &ReportSnapshotter{
		reports:  reports,
		interval: interval,
	}
}

func (s *ReportSnapshotter) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Infof("Report snapshotter started, every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping report snapshotter...")
			return
		case now := <-ticker.C:
			s.snapshot(ctx, now)
		}
	}
}

func (s *ReportSnapshotter) snapshot(ctx context.Context, now time.Time) {
	key, err := s.reports.Snapshot(ctx, now)
	if err != nil {
		log.Errorf("Snapshotter: failed to archive report: %v", err)
		return
	}

	log.Debugf("Snapshotter: report archived at %s", key)
}
