// Package scheduler wires the campaign pipelines to cron triggers in the
// operational timezone.
package scheduler

import (
	"sync"
	"time"

	campaignUseCase "diet-challenge-api/src/application/usecases/campaign"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultTimezone   = "Asia/Kolkata"
	defaultCohortSpec = "0 12 * * *"
	defaultRetrySpec  = "0 18 * * *"
)

// Config controls the trigger schedule. Enabled is gated on
// CRON_ENV=production so staging copies of the service never message real
// challengers.
type Config struct {
	Timezone   *time.Location
	CohortSpec string
	RetrySpec  string
	Enabled    bool
}

// ConfigFromEnv reads CRON_ENV, CRON_TIMEZONE, CRON_COHORT_SPEC and
// CRON_RETRY_SPEC. An unknown timezone name falls back to the default.
func ConfigFromEnv(loggerInstance *logger.Logger) Config {
	tzName := utils.GetEnv("CRON_TIMEZONE", defaultTimezone)
	location, err := time.LoadLocation(tzName)
	if err != nil {
		loggerInstance.Warn("Unknown timezone, falling back", zap.String("timezone", tzName), zap.Error(err))
		location, _ = time.LoadLocation(defaultTimezone)
	}
	return Config{
		Timezone:   location,
		CohortSpec: utils.GetEnv("CRON_COHORT_SPEC", defaultCohortSpec),
		RetrySpec:  utils.GetEnv("CRON_RETRY_SPEC", defaultRetrySpec),
		Enabled:    utils.GetEnv("CRON_ENV", "") == "production",
	}
}

type Scheduler struct {
	cron     *cron.Cron
	campaign campaignUseCase.ICampaignUseCase
	config   Config

	cohortMu sync.Mutex
	retryMu  sync.Mutex

	Logger *logger.Logger
}

func NewScheduler(campaign campaignUseCase.ICampaignUseCase, config Config, loggerInstance *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(config.Timezone)),
		campaign: campaign,
		config:   config,
		Logger:   loggerInstance,
	}
}

// Start registers the triggers and starts the cron loop. It is a no-op when
// the scheduler is disabled.
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.Logger.Info("Scheduler disabled, campaign triggers will not fire")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.CohortSpec, s.runCohorts); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.config.RetrySpec, s.runRetry); err != nil {
		return err
	}

	s.cron.Start()
	s.Logger.Info("Scheduler started",
		zap.String("timezone", s.config.Timezone.String()),
		zap.String("cohortSpec", s.config.CohortSpec),
		zap.String("retrySpec", s.config.RetrySpec))
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.Logger.Info("Scheduler stopped")
}

// runCohorts runs the daily-incremental pass and then the bulk pass. A run
// still in flight from the previous trigger is not overlapped, the new
// trigger is skipped instead.
func (s *Scheduler) runCohorts() {
	if !s.cohortMu.TryLock() {
		s.Logger.Warn("Previous cohort run still in progress, skipping trigger")
		return
	}
	defer s.cohortMu.Unlock()

	if err := s.campaign.RunDailyCohort(); err != nil {
		s.Logger.Error("Daily cohort run failed", zap.Error(err))
	}
	if err := s.campaign.RunBulkCohort(); err != nil {
		s.Logger.Error("Bulk cohort run failed", zap.Error(err))
	}
}

func (s *Scheduler) runRetry() {
	if !s.retryMu.TryLock() {
		s.Logger.Warn("Previous retry run still in progress, skipping trigger")
		return
	}
	defer s.retryMu.Unlock()

	if err := s.campaign.RetryFailedNotifications(); err != nil {
		s.Logger.Error("Retry run failed", zap.Error(err))
	}
}
