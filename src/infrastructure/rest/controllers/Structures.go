package controllers

import (
	"github.com/gin-gonic/gin"
)

// MessageResponse is the generic envelope for status-only replies
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationResultDTO wraps list replies with their paging facts
type PaginationResultDTO struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	NumPages   int64       `json:"numPages"`
	NextCursor int         `json:"nextCursor,omitempty"`
}

// BindJSON decodes the request body into the target structure
func BindJSON(ctx *gin.Context, target interface{}) error {
	return ctx.ShouldBindJSON(target)
}

// BindJSONMap decodes the request body into a generic map, for partial
// update endpoints
func BindJSONMap(ctx *gin.Context, target *map[string]interface{}) error {
	return ctx.ShouldBindJSON(target)
}
