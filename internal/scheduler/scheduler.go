package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/config"
	"github.com/khapung280/RENTNEST-sub000/internal/service"
)

// Scheduler runs the periodic booking housekeeping job
type Scheduler struct {
	cron      *cron.Cron
	bookings  *service.BookingService
	config    *config.Config
	logger    *zap.Logger
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(bookings *service.BookingService, cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		bookings: bookings,
		config:   cfg,
		logger:   logger,
	}
}

// Start registers and starts the expiry job
func (s *Scheduler) Start() error {
	if !s.config.Booking.ExpiryEnabled {
		s.logger.Info("booking expiry job disabled in configuration")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.Booking.ExpiryCronSpec, func() {
		if err := s.expireStalePending(); err != nil {
			s.logger.Error("booking expiry job failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("scheduler started",
		zap.String("cron", s.config.Booking.ExpiryCronSpec))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	if s.isRunning {
		<-s.cron.Stop().Done()
		s.isRunning = false
		s.logger.Info("scheduler stopped")
	}
}

// RunNow immediately executes the expiry job (for manual trigger)
func (s *Scheduler) RunNow() error {
	return s.expireStalePending()
}

func (s *Scheduler) expireStalePending() error {
	_, err := s.bookings.ExpireStalePending(context.Background())
	return err
}
