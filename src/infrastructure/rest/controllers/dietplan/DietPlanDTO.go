package dietplan

import (
	"time"

	domainDietPlan "diet-challenge-api/src/domain/dietplan"
)

type UploadRequest struct {
	Name        string `form:"name" binding:"required,min=2,max=150"`
	Duration    string `form:"duration" binding:"required"`
	Type        string `form:"type" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Subcategory string `form:"subcategory"`
	Description string `form:"description"`
}

type PlanIDRequest struct {
	ID int `uri:"id" binding:"required"`
}

type DietPlanResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Duration    string    `json:"duration"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Description string    `json:"description"`
	PDFName     string    `json:"pdfName"`
	PDFSize     int64     `json:"pdfSize"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

func toResponse(plan *domainDietPlan.DietPlan) DietPlanResponse {
	return DietPlanResponse{
		ID:          plan.ID,
		Name:        plan.Name,
		Duration:    plan.Duration,
		Type:        plan.Type,
		Category:    plan.Category,
		Subcategory: plan.Subcategory,
		Description: plan.Description,
		PDFName:     plan.PDFName,
		PDFSize:     plan.PDFSize,
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}
