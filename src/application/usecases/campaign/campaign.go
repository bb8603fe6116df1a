package campaign

import (
	"time"

	domainChallenger "diet-challenge-api/src/domain/challenger"
	domainNotification "diet-challenge-api/src/domain/notification"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/messaging"
	challengerRepo "diet-challenge-api/src/infrastructure/repository/mysql/challenger"
	notificationRepo "diet-challenge-api/src/infrastructure/repository/mysql/notification"

	"go.uber.org/zap"
)

// DefaultBulkDays are the calendar days the bulk cohort fires on. The 31st
// rolls over to the 1st when the previous month was shorter.
var DefaultBulkDays = []int{8, 15, 22, 31}

// Config tunes the campaign pipelines. Zero values fall back to production
// defaults.
type Config struct {
	// CohortCutoff splits registrations into the bulk (before) and
	// daily-incremental (after) cohorts
	CohortCutoff time.Time
	ChunkSize    int
	PageDelay    time.Duration
	RetryDelay   time.Duration
	Timezone     *time.Location
	BulkDays     []int
	// Denylist holds mobile numbers that must never be contacted
	Denylist []string
}

// ICampaignUseCase drives the scheduled notification pipelines
type ICampaignUseCase interface {
	RunDailyCohort() error
	RunBulkCohort() error
	RetryFailedNotifications() error
}

type CampaignUseCase struct {
	challengerRepository      challengerRepo.ChallengerRepositoryInterface
	notificationLogRepository notificationRepo.NotificationLogRepositoryInterface
	dispatcher                messaging.DispatcherInterface
	config                    Config
	now                       func() time.Time
	Logger                    *logger.Logger
}

// NewCampaignUseCase creates the campaign use case
func NewCampaignUseCase(
	challengerRepository challengerRepo.ChallengerRepositoryInterface,
	notificationLogRepository notificationRepo.NotificationLogRepositoryInterface,
	dispatcher messaging.DispatcherInterface,
	config Config,
	loggerInstance *logger.Logger,
) *CampaignUseCase {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 100
	}
	if config.PageDelay <= 0 {
		config.PageDelay = time.Second
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if config.Timezone == nil {
		config.Timezone = time.UTC
	}
	if len(config.BulkDays) == 0 {
		config.BulkDays = DefaultBulkDays
	}
	return &CampaignUseCase{
		challengerRepository:      challengerRepository,
		notificationLogRepository: notificationLogRepository,
		dispatcher:                dispatcher,
		config:                    config,
		now:                       time.Now,
		Logger:                    loggerInstance,
	}
}

// SetClock overrides the use case's clock, for tests
func (u *CampaignUseCase) SetClock(now func() time.Time) {
	u.now = now
}

// IsBulkReminderDay reports whether the bulk cohort should run on the given
// date. Days from the configured set always match; the 1st matches only when
// the previous month had fewer than 31 days, standing in for the missing 31st.
func IsBulkReminderDay(date time.Time, bulkDays []int) bool {
	day := date.Day()
	for _, d := range bulkDays {
		if d == day {
			return true
		}
	}
	if day == 1 {
		lastDayOfPrevMonth := date.AddDate(0, 0, -1).Day()
		return lastDayOfPrevMonth < 31
	}
	return false
}

// RunDailyCohort notifies challengers registered after the cutoff whose plan
// duration has elapsed since their last update
func (u *CampaignUseCase) RunDailyCohort() error {
	cutoff := u.config.CohortCutoff
	cohort := domainChallenger.Cohort{
		Name:           "daily-incremental",
		ReferenceField: domainChallenger.ReferenceUpdatedAt,
		WindowStart:    &cutoff,
	}

	u.Logger.Info("Starting daily reminder run", zap.String("cohort", cohort.Name))
	err := u.runCohort(cohort)
	if err != nil {
		u.Logger.Error("Daily reminder run aborted", zap.String("cohort", cohort.Name), zap.Error(err))
		return err
	}
	u.Logger.Info("Completed daily reminder run", zap.String("cohort", cohort.Name))
	return nil
}

// RunBulkCohort notifies pre-cutoff challengers, but only on bulk reminder
// days
func (u *CampaignUseCase) RunBulkCohort() error {
	today := u.now().In(u.config.Timezone)
	if !IsBulkReminderDay(today, u.config.BulkDays) {
		u.Logger.Info("Not a bulk reminder day, skipping bulk cohort", zap.Int("day", today.Day()))
		return nil
	}

	cutoff := u.config.CohortCutoff
	cohort := domainChallenger.Cohort{
		Name:           "bulk",
		ReferenceField: domainChallenger.ReferenceCreatedAt,
		WindowEnd:      &cutoff,
	}

	u.Logger.Info("Starting bulk reminder run", zap.String("cohort", cohort.Name))
	err := u.runCohort(cohort)
	if err != nil {
		u.Logger.Error("Bulk reminder run aborted", zap.String("cohort", cohort.Name), zap.Error(err))
		return err
	}
	u.Logger.Info("Completed bulk reminder run", zap.String("cohort", cohort.Name))
	return nil
}

// runCohort walks the cohort in fixed-size pages until an empty page comes
// back. A store error aborts the whole run; a failed dispatch only moves on
// to the next challenger.
func (u *CampaignUseCase) runCohort(cohort domainChallenger.Cohort) error {
	offset := 0
	for {
		page, err := u.challengerRepository.ListEligible(cohort, u.config.Denylist, offset, u.config.ChunkSize)
		if err != nil {
			return err
		}
		if len(*page) == 0 {
			return nil
		}

		for i := range *page {
			ch := &(*page)[i]
			if !domainChallenger.DueForReminder(ch, cohort, u.now()) {
				continue
			}
			u.notifyChallenger(ch)
		}

		offset += u.config.ChunkSize
		// throttle between pages to bound store and provider load
		time.Sleep(u.config.PageDelay)
	}
}

// notifyChallenger dispatches one completion message and persists the outcome
// to the ledger, flagging every row with the same mobile number on success
func (u *CampaignUseCase) notifyChallenger(ch *domainChallenger.Challenger) {
	outcome, dispatchErr := u.dispatcher.Dispatch(&messaging.DispatchInput{
		ChallengerID: ch.ID,
		Name:         ch.Name,
		Mobile:       ch.Mobile,
		CountryCode:  ch.CountryCode,
		Duration:     ch.Duration,
	})

	entry := &domainNotification.Log{
		ChallengerID:   ch.ID,
		Mobile:         ch.Mobile,
		CountryCode:    ch.CountryCode,
		Duration:       ch.Duration,
		DurationActual: domainChallenger.DurationDays(ch.Duration),
		Payload:        outcome.Payload,
		ResponseData:   outcome.Response,
		ResponseID:     outcome.ResponseID,
		RetryCount:     0,
	}

	if dispatchErr != nil {
		// failures are logged too so the retry pipeline has input
		entry.Status = domainNotification.StatusFailed
		if _, err := u.notificationLogRepository.Create(entry); err != nil {
			u.Logger.Error("Error saving failed notification log", zap.Error(err), zap.String("mobile", ch.Mobile))
		}
		return
	}

	entry.Status = domainNotification.StatusSent
	if _, err := u.notificationLogRepository.Create(entry); err != nil {
		u.Logger.Error("Error saving notification log", zap.Error(err), zap.String("mobile", ch.Mobile))
	}

	if err := u.challengerRepository.MarkReminderSentByMobile(ch.Mobile); err != nil {
		u.Logger.Error("Error marking reminder sent", zap.Error(err), zap.String("mobile", ch.Mobile))
		return
	}

	u.Logger.Info("Reminder sent successfully",
		zap.Int("challengerID", ch.ID),
		zap.String("name", ch.Name),
		zap.String("mobile", ch.Mobile),
		zap.String("duration", ch.Duration))
}

// RetryFailedNotifications re-dispatches Failed ledger rows from yesterday's
// window. A row that fails again is left untouched so the next day's trigger
// can pick it up while it remains inside the window and under the retry cap.
func (u *CampaignUseCase) RetryFailedNotifications() error {
	windowStart, windowEnd := u.retryWindow()
	u.Logger.Info("Starting failed notifications retry run",
		zap.Time("windowStart", windowStart),
		zap.Time("windowEnd", windowEnd))

	offset := 0
	for {
		page, err := u.notificationLogRepository.ListFailedForRetry(windowStart, windowEnd, u.config.Denylist, offset, u.config.ChunkSize)
		if err != nil {
			u.Logger.Error("Failed notifications retry run aborted", zap.Error(err))
			return err
		}
		if len(*page) == 0 {
			break
		}

		for i := range *page {
			u.retryOne(&(*page)[i])
		}

		offset += u.config.ChunkSize
		time.Sleep(u.config.RetryDelay)
	}

	u.Logger.Info("Completed failed notifications retry run")
	return nil
}

func (u *CampaignUseCase) retryOne(candidate *domainNotification.RetryCandidate) {
	countryCode := candidate.CountryCode
	if countryCode == "" {
		countryCode = "+91"
	}

	_, dispatchErr := u.dispatcher.Dispatch(&messaging.DispatchInput{
		ChallengerID: candidate.Log.ChallengerID,
		Name:         candidate.ChallengerName,
		Mobile:       candidate.Mobile,
		CountryCode:  countryCode,
		Duration:     candidate.Duration,
	})
	if dispatchErr != nil {
		u.Logger.Error("Error retrying failed notification",
			zap.Int("id", candidate.Log.ID),
			zap.Error(dispatchErr))
		return
	}

	if err := u.notificationLogRepository.MarkRetrySent(candidate.Log.ID); err != nil {
		u.Logger.Error("Error updating retried notification log", zap.Error(err), zap.Int("id", candidate.Log.ID))
	}
}

// retryWindow returns yesterday's [00:00:00.000, 23:59:59.999] in the
// operational timezone
func (u *CampaignUseCase) retryWindow() (time.Time, time.Time) {
	now := u.now().In(u.config.Timezone)
	yesterday := now.AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, u.config.Timezone)
	end := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 59, int(999*time.Millisecond), u.config.Timezone)
	return start, end
}
