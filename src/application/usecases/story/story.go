package story

import (
	domainStory "diet-challenge-api/src/domain/story"
	logger "diet-challenge-api/src/infrastructure/logger"
	storyRepo "diet-challenge-api/src/infrastructure/repository/mysql/story"
)

type IStoryUseCase interface {
	Create(storyDomain *domainStory.Story) (*domainStory.Story, error)
	GetByID(id int) (*domainStory.Story, error)
	List(activeOnly bool, page, limit int) (*[]domainStory.Story, int64, error)
	Update(id int, storyMap map[string]interface{}) (*domainStory.Story, error)
	Delete(id int) error
}

type StoryUseCase struct {
	storyRepository storyRepo.StoryRepositoryInterface
	Logger          *logger.Logger
}

func NewStoryUseCase(storyRepository storyRepo.StoryRepositoryInterface, loggerInstance *logger.Logger) *StoryUseCase {
	return &StoryUseCase{
		storyRepository: storyRepository,
		Logger:          loggerInstance,
	}
}

func (s *StoryUseCase) Create(storyDomain *domainStory.Story) (*domainStory.Story, error) {
	return s.storyRepository.Create(storyDomain)
}

func (s *StoryUseCase) GetByID(id int) (*domainStory.Story, error) {
	return s.storyRepository.GetByID(id)
}

func (s *StoryUseCase) List(activeOnly bool, page, limit int) (*[]domainStory.Story, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.storyRepository.List(activeOnly, page, limit)
}

func (s *StoryUseCase) Update(id int, storyMap map[string]interface{}) (*domainStory.Story, error) {
	return s.storyRepository.Update(id, storyMap)
}

func (s *StoryUseCase) Delete(id int) error {
	return s.storyRepository.Delete(id)
}
