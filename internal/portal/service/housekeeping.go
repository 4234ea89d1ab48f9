package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/spotter/internal/portal/metrics"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"github.com/robfig/cron/v3"
)

// DefaultHousekeepingSchedule runs cleanup every minute so expired
// impersonation sessions are audited promptly.
const DefaultHousekeepingSchedule = "@every 1m"

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// HousekeepingService periodically ends expired impersonation sessions and
// deletes abandoned OAuth states.
type HousekeepingService struct {
	Impersonation *ImpersonationService
	Calendar      *CalendarService
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	Schedule      string

	cron *cron.Cron
}

// NewHousekeepingService validates schedule, which is a five-field cron
// expression or a descriptor such as "@every 5m". Empty means the default.
func NewHousekeepingService(
	imp *ImpersonationService,
	cal *CalendarService,
	m *metrics.Metrics,
	logger *slog.Logger,
	schedule string,
) (*HousekeepingService, error) {
	if schedule == "" {
		schedule = DefaultHousekeepingSchedule
	}

	c := cron.New(
		cron.WithParser(scheduleParser),
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
	)

	s := &HousekeepingService{
		Impersonation: imp,
		Calendar:      cal,
		Metrics:       m,
		Logger:        logger,
		Schedule:      schedule,
		cron:          c,
	}
	if _, err := c.AddFunc(schedule, func() { s.Cleanup(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid housekeeping schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs one cleanup immediately, then hands over to the scheduler.
func (s *HousekeepingService) Start() {
	s.Cleanup(context.Background())
	s.cron.Start()
	s.Logger.Info("housekeeping service started", "schedule", s.Schedule)
}

// Stop waits for a running cleanup to finish.
func (s *HousekeepingService) Stop() {
	<-s.cron.Stop().Done()
	s.Logger.Info("housekeeping service stopped")
}

// Cleanup runs every task once. Failures in one task do not stop the others.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	ctx = slogx.With(slogx.WithContext(ctx, s.Logger), "component", "housekeeping")
	log := slogx.FromContext(ctx)
	var succeeded int

	if s.Impersonation != nil {
		n, err := s.Impersonation.ExpireSessions(ctx)
		s.Metrics.HousekeepingRun("impersonation_sessions", err)
		if err != nil {
			log.Error("failed to expire impersonation sessions", "error", err)
		} else {
			log.Debug("expired impersonation sessions", "count", n)
			succeeded++
		}
	}

	if s.Calendar != nil {
		n, err := s.Calendar.CleanupExpiredStates(ctx)
		s.Metrics.HousekeepingRun("oauth_states", err)
		if err != nil {
			log.Error("failed to delete expired oauth states", "error", err)
		} else {
			log.Debug("deleted expired oauth states", "count", n)
			succeeded++
		}
	}

	log.Debug("housekeeping cleanup completed", "successful_cleanups", succeeded)
}

// cronLogger adapts slog to cron's logger.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
