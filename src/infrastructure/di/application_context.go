package di

import (
	"sync"
	"time"

	"diet-challenge-api/src/domain/common"
	"diet-challenge-api/src/infrastructure/denylist"
	"diet-challenge-api/src/infrastructure/helper"
	"diet-challenge-api/src/infrastructure/messaging"
	"diet-challenge-api/src/infrastructure/scheduler"
	"diet-challenge-api/src/infrastructure/utils"

	"go.uber.org/zap"

	authUseCase "diet-challenge-api/src/application/usecases/auth"
	campaignUseCase "diet-challenge-api/src/application/usecases/campaign"
	challengerUseCase "diet-challenge-api/src/application/usecases/challenger"
	dietPlanUseCase "diet-challenge-api/src/application/usecases/dietplan"
	storyUseCase "diet-challenge-api/src/application/usecases/story"
	webhookUseCase "diet-challenge-api/src/application/usecases/webhook"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/repository/interakt"
	"diet-challenge-api/src/infrastructure/repository/mysql"
	challengerRepo "diet-challenge-api/src/infrastructure/repository/mysql/challenger"
	dietPlanRepo "diet-challenge-api/src/infrastructure/repository/mysql/dietplan"
	notificationRepo "diet-challenge-api/src/infrastructure/repository/mysql/notification"
	storyRepo "diet-challenge-api/src/infrastructure/repository/mysql/story"
	"diet-challenge-api/src/infrastructure/repository/mysql/user"
	authController "diet-challenge-api/src/infrastructure/rest/controllers/auth"
	challengerController "diet-challenge-api/src/infrastructure/rest/controllers/challenger"
	dietPlanController "diet-challenge-api/src/infrastructure/rest/controllers/dietplan"
	storyController "diet-challenge-api/src/infrastructure/rest/controllers/story"
	webhookController "diet-challenge-api/src/infrastructure/rest/controllers/webhook"
	"diet-challenge-api/src/infrastructure/security"
	"diet-challenge-api/src/infrastructure/storage/s3"

	"gorm.io/gorm"
)

// ApplicationContext holds all application dependencies and services
type ApplicationContext struct {
	DB                        *gorm.DB
	Logger                    *logger.Logger
	AuthController            authController.IAuthController
	ChallengerController      challengerController.IChallengerController
	DietPlanController        dietPlanController.IDietPlanController
	StoryController           storyController.IStoryController
	WebhookController         webhookController.IWebhookController
	JWTService                security.IJWTService
	CommonService             common.CommonService
	ObjectStore               s3.ObjectStoreInterface
	Dispatcher                messaging.DispatcherInterface
	Scheduler                 *scheduler.Scheduler
	UserRepository            user.UserRepositoryInterface
	ChallengerRepository      challengerRepo.ChallengerRepositoryInterface
	NotificationLogRepository notificationRepo.NotificationLogRepositoryInterface
	WebhookLogRepository      notificationRepo.WebhookLogRepositoryInterface
	DietPlanRepository        dietPlanRepo.DietPlanRepositoryInterface
	StoryRepository           storyRepo.StoryRepositoryInterface
	AuthUseCase               authUseCase.IAuthUseCase
	ChallengerUseCase         challengerUseCase.IChallengerUseCase
	DietPlanUseCase           dietPlanUseCase.IDietPlanUseCase
	StoryUseCase              storyUseCase.IStoryUseCase
	WebhookUseCase            webhookUseCase.IWebhookUseCase
	CampaignUseCase           campaignUseCase.ICampaignUseCase
}

var (
	loggerInstance *logger.Logger
	loggerOnce     sync.Once
)

func GetLogger() *logger.Logger {
	loggerOnce.Do(func() {
		loggerInstance, _ = logger.NewLogger()
	})
	return loggerInstance
}

// SetupDependencies creates a new application context with all dependencies
func SetupDependencies(loggerInstance *logger.Logger) (*ApplicationContext, error) {
	db, err := mysql.InitMySQLDB(loggerInstance)
	if err != nil {
		return nil, err
	}

	jwtService := security.NewJWTService()

	objectStore, err := s3.NewObjectStore(loggerInstance)
	if err != nil {
		return nil, err
	}

	validator := helper.NewValidator(loggerInstance)
	commonService := common.NewCommonService(validator)

	userRepository := user.NewUserRepository(db, loggerInstance)
	challengerRepository := challengerRepo.NewChallengerRepository(db, loggerInstance)
	notificationLogRepository := notificationRepo.NewNotificationLogRepository(db, loggerInstance)
	webhookLogRepository := notificationRepo.NewWebhookLogRepository(db, loggerInstance)
	dietPlanRepository := dietPlanRepo.NewDietPlanRepository(db, loggerInstance)
	storyRepository := storyRepo.NewStoryRepository(db, loggerInstance)

	interaktClient := interakt.NewInteraktClient(
		utils.GetEnv("INTERAKT_BASE_URL", ""),
		utils.GetEnv("INTERAKT_API_KEY", ""),
		loggerInstance,
	)
	dispatcher := messaging.NewDispatcher(interaktClient, loggerInstance)
	otpSender := messaging.NewOTPSender(interaktClient, loggerInstance)

	excludedMobiles, err := denylist.Load()
	if err != nil {
		return nil, err
	}
	loggerInstance.Info("Denylist loaded", zap.Int("entries", len(excludedMobiles)))

	schedulerConfig := scheduler.ConfigFromEnv(loggerInstance)

	campaignUC := campaignUseCase.NewCampaignUseCase(
		challengerRepository,
		notificationLogRepository,
		dispatcher,
		campaignUseCase.Config{
			CohortCutoff: cohortCutoff(loggerInstance),
			Timezone:     schedulerConfig.Timezone,
			Denylist:     excludedMobiles,
		},
		loggerInstance,
	)

	authUC := authUseCase.NewAuthUseCase(userRepository, jwtService, loggerInstance)
	challengerUC := challengerUseCase.NewChallengerUseCase(challengerRepository, dietPlanRepository, otpSender, objectStore, commonService, loggerInstance)
	dietPlanUC := dietPlanUseCase.NewDietPlanUseCase(dietPlanRepository, objectStore, loggerInstance)
	storyUC := storyUseCase.NewStoryUseCase(storyRepository, loggerInstance)
	webhookUC := webhookUseCase.NewWebhookUseCase(webhookLogRepository, loggerInstance)

	schedulerInstance := scheduler.NewScheduler(campaignUC, schedulerConfig, loggerInstance)

	return &ApplicationContext{
		DB:                        db,
		Logger:                    loggerInstance,
		AuthController:            authController.NewAuthController(authUC, loggerInstance),
		ChallengerController:      challengerController.NewChallengerController(commonService, challengerUC, loggerInstance),
		DietPlanController:        dietPlanController.NewDietPlanController(commonService, dietPlanUC, loggerInstance),
		StoryController:           storyController.NewStoryController(commonService, storyUC, objectStore, loggerInstance),
		WebhookController:         webhookController.NewWebhookController(webhookUC, loggerInstance),
		JWTService:                jwtService,
		CommonService:             commonService,
		ObjectStore:               objectStore,
		Dispatcher:                dispatcher,
		Scheduler:                 schedulerInstance,
		UserRepository:            userRepository,
		ChallengerRepository:      challengerRepository,
		NotificationLogRepository: notificationLogRepository,
		WebhookLogRepository:      webhookLogRepository,
		DietPlanRepository:        dietPlanRepository,
		StoryRepository:           storyRepository,
		AuthUseCase:               authUC,
		ChallengerUseCase:         challengerUC,
		DietPlanUseCase:           dietPlanUC,
		StoryUseCase:              storyUC,
		WebhookUseCase:            webhookUC,
		CampaignUseCase:           campaignUC,
	}, nil
}

// cohortCutoff parses CAMPAIGN_COHORT_CUTOFF (YYYY-MM-DD). Everything
// registered before it belongs to the bulk cohort, everything after to the
// daily-incremental cohort.
func cohortCutoff(loggerInstance *logger.Logger) time.Time {
	raw := utils.GetEnv("CAMPAIGN_COHORT_CUTOFF", "2023-11-01")
	cutoff, err := time.Parse("2006-01-02", raw)
	if err != nil {
		loggerInstance.Warn("Invalid CAMPAIGN_COHORT_CUTOFF, using default", zap.String("value", raw), zap.Error(err))
		cutoff, _ = time.Parse("2006-01-02", "2023-11-01")
	}
	return cutoff
}

// NewTestApplicationContext creates an application context for testing with mocked dependencies
func NewTestApplicationContext(
	mockUserRepo user.UserRepositoryInterface,
	mockJWTService security.IJWTService,
	loggerInstance *logger.Logger,
) *ApplicationContext {
	authUC := authUseCase.NewAuthUseCase(mockUserRepo, mockJWTService, loggerInstance)

	return &ApplicationContext{
		AuthController: authController.NewAuthController(authUC, loggerInstance),
		JWTService:     mockJWTService,
		UserRepository: mockUserRepo,
		AuthUseCase:    authUC,
	}
}
