package story

import (
	"time"

	domainStory "diet-challenge-api/src/domain/story"
)

type CreateStoryRequest struct {
	Title string `form:"title" binding:"required,min=2,max=150"`
	Body  string `form:"body" binding:"required"`
}

type StoryIDRequest struct {
	ID int `uri:"id" binding:"required"`
}

type StoryResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toResponse(st *domainStory.Story, imageURL string) StoryResponse {
	return StoryResponse{
		ID:        st.ID,
		Title:     st.Title,
		Body:      st.Body,
		ImageURL:  imageURL,
		IsActive:  st.IsActive,
		CreatedAt: st.CreatedAt,
		UpdatedAt: st.UpdatedAt,
	}
}
