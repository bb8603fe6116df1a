package dietplan

import (
	"errors"
	"io"
	"time"

	domainDietPlan "diet-challenge-api/src/domain/dietplan"
	domainErrors "diet-challenge-api/src/domain/errors"
	logger "diet-challenge-api/src/infrastructure/logger"
	dietPlanRepo "diet-challenge-api/src/infrastructure/repository/mysql/dietplan"
	"diet-challenge-api/src/infrastructure/storage/s3"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	pdfKeyPrefix = "diet-plans"

	// maxPDFSize rejects uploads above 15 MiB before they reach the bucket
	maxPDFSize = 15 << 20

	downloadURLExpiry = time.Hour
)

// UploadInput is a new plan PDF with its matching attributes
type UploadInput struct {
	Name        string
	Duration    string
	Type        string
	Category    string
	Subcategory string
	Description string
	FileName    string
	FileData    []byte
	CreatedBy   int
}

type IDietPlanUseCase interface {
	Upload(input *UploadInput) (*domainDietPlan.DietPlan, error)
	GetByID(id int) (*domainDietPlan.DietPlan, error)
	List(filter domainDietPlan.Filter, page, limit int) (*[]domainDietPlan.DietPlan, int64, error)
	Update(id int, planMap map[string]interface{}) (*domainDietPlan.DietPlan, error)
	Delete(id int) error
	DownloadURL(id int) (string, error)
	Download(id int) (*DownloadStream, error)
}

// DownloadStream is an open PDF body ready to proxy to the client. The caller
// owns closing Body.
type DownloadStream struct {
	Body     io.ReadCloser
	Size     int64
	FileName string
}

type DietPlanUseCase struct {
	dietPlanRepository dietPlanRepo.DietPlanRepositoryInterface
	objectStore        s3.ObjectStoreInterface
	Logger             *logger.Logger
}

func NewDietPlanUseCase(
	dietPlanRepository dietPlanRepo.DietPlanRepositoryInterface,
	objectStore s3.ObjectStoreInterface,
	loggerInstance *logger.Logger,
) *DietPlanUseCase {
	return &DietPlanUseCase{
		dietPlanRepository: dietPlanRepository,
		objectStore:        objectStore,
		Logger:             loggerInstance,
	}
}

// Upload validates the PDF by content sniffing, stores it in the bucket and
// records the plan
func (s *DietPlanUseCase) Upload(input *UploadInput) (*domainDietPlan.DietPlan, error) {
	if len(input.FileData) == 0 {
		return nil, domainErrors.NewAppError(errors.New("empty file"), domainErrors.ValidationError)
	}
	if len(input.FileData) > maxPDFSize {
		return nil, domainErrors.NewAppError(errors.New("file too large"), domainErrors.ValidationError)
	}

	detected := mimetype.Detect(input.FileData)
	if !detected.Is("application/pdf") {
		s.Logger.Warn("Rejected non-PDF plan upload",
			zap.String("filename", input.FileName),
			zap.String("detected", detected.String()))
		return nil, domainErrors.NewAppError(errors.New("file must be a PDF"), domainErrors.ValidationError)
	}

	key := s.objectStore.NewKey(pdfKeyPrefix, input.FileName)
	if err := s.objectStore.Put(key, input.FileData, "application/pdf"); err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}

	created, err := s.dietPlanRepository.Create(&domainDietPlan.DietPlan{
		Name:        input.Name,
		Duration:    input.Duration,
		Type:        input.Type,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Description: input.Description,
		PDFKey:      key,
		PDFName:     input.FileName,
		PDFSize:     int64(len(input.FileData)),
		CreatedBy:   input.CreatedBy,
		IsActive:    true,
	})
	if err != nil {
		// do not leave an orphaned object behind
		if delErr := s.objectStore.Delete(key); delErr != nil {
			s.Logger.Error("Error cleaning up orphaned plan PDF", zap.Error(delErr), zap.String("key", key))
		}
		return nil, err
	}

	s.Logger.Info("Diet plan uploaded", zap.Int("id", created.ID), zap.String("key", key))
	return created, nil
}

func (s *DietPlanUseCase) GetByID(id int) (*domainDietPlan.DietPlan, error) {
	return s.dietPlanRepository.GetByID(id)
}

func (s *DietPlanUseCase) List(filter domainDietPlan.Filter, page, limit int) (*[]domainDietPlan.DietPlan, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 20
	}
	return s.dietPlanRepository.List(filter, page, limit)
}

func (s *DietPlanUseCase) Update(id int, planMap map[string]interface{}) (*domainDietPlan.DietPlan, error) {
	return s.dietPlanRepository.Update(id, planMap)
}

// Delete removes the plan record and its stored PDF
func (s *DietPlanUseCase) Delete(id int) error {
	plan, err := s.dietPlanRepository.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.dietPlanRepository.Delete(id); err != nil {
		return err
	}
	if plan.PDFKey != "" {
		if err := s.objectStore.Delete(plan.PDFKey); err != nil {
			s.Logger.Error("Error deleting plan PDF", zap.Error(err), zap.String("key", plan.PDFKey))
		}
	}
	return nil
}

// DownloadURL issues a time-limited link to the plan PDF
func (s *DietPlanUseCase) DownloadURL(id int) (string, error) {
	plan, err := s.dietPlanRepository.GetByID(id)
	if err != nil {
		return "", err
	}
	if plan.PDFKey == "" {
		return "", domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return s.objectStore.PresignedURL(plan.PDFKey, downloadURLExpiry)
}

// Download opens the plan PDF for streaming straight from the bucket
func (s *DietPlanUseCase) Download(id int) (*DownloadStream, error) {
	plan, err := s.dietPlanRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan.PDFKey == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}

	body, size, err := s.objectStore.StreamRead(plan.PDFKey)
	if err != nil {
		s.Logger.Error("Error opening plan PDF", zap.Error(err), zap.String("key", plan.PDFKey))
		return nil, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	name := plan.PDFName
	if name == "" {
		name = "diet-plan.pdf"
	}
	return &DownloadStream{Body: body, Size: size, FileName: name}, nil
}
