// Package dummy seeds synthetic challenger registrations at random
// intervals, used to keep demo environments populated. It never runs unless
// DUMMY_CRON=enabled.
package dummy

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	domainChallenger "diet-challenge-api/src/domain/challenger"
	logger "diet-challenge-api/src/infrastructure/logger"
	challengerRepo "diet-challenge-api/src/infrastructure/repository/mysql/challenger"
	"diet-challenge-api/src/infrastructure/utils"

	"go.uber.org/zap"
)

const (
	minInterval = 30 * time.Second
	maxInterval = 90 * time.Second
)

var sampleNames = []string{
	"Aarav", "Vihaan", "Ananya", "Diya", "Ishaan",
	"Kavya", "Rohan", "Priya", "Arjun", "Meera",
}

var sampleDurations = []string{"7 days", "14 days", "21 days", "30 days"}

type Generator struct {
	challengerRepository challengerRepo.ChallengerRepositoryInterface
	Logger               *logger.Logger
}

func NewGenerator(challengerRepository challengerRepo.ChallengerRepositoryInterface, loggerInstance *logger.Logger) *Generator {
	return &Generator{
		challengerRepository: challengerRepository,
		Logger:               loggerInstance,
	}
}

// Enabled reports whether the generator should run in this deployment
func Enabled() bool {
	return utils.GetEnv("DUMMY_CRON", "disabled") == "enabled"
}

// Run inserts dummy challengers until the context is cancelled. Rows are
// flagged is_dummy so every campaign query can exclude them.
func (g *Generator) Run(ctx context.Context) {
	g.Logger.Info("Dummy challenger generator started")
	for {
		delay := minInterval + time.Duration(rand.Int63n(int64(maxInterval-minInterval)))
		select {
		case <-ctx.Done():
			g.Logger.Info("Dummy challenger generator stopped")
			return
		case <-time.After(delay):
		}

		challenger := g.randomChallenger()
		if _, err := g.challengerRepository.Create(challenger); err != nil {
			g.Logger.Error("Error creating dummy challenger", zap.Error(err))
			continue
		}
		g.Logger.Info("Dummy challenger created", zap.String("mobile", challenger.Mobile))
	}
}

func (g *Generator) randomChallenger() *domainChallenger.Challenger {
	return &domainChallenger.Challenger{
		Name:        sampleNames[rand.Intn(len(sampleNames))],
		Mobile:      fmt.Sprintf("99%08d", rand.Intn(100000000)),
		CountryCode: "+91",
		Duration:    sampleDurations[rand.Intn(len(sampleDurations))],
		OTPVerified: true,
		IsDummy:     true,
	}
}
