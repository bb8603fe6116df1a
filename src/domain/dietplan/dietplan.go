package dietplan

import "time"

// DietPlan is one uploadable plan PDF, matched to challengers by
// duration/category/subcategory/type
type DietPlan struct {
	ID           int
	Name         string
	Duration     string
	Type         string
	Category     string
	Subcategory  string
	Description  string
	PDFKey       string // S3 object key
	PDFName      string // original upload filename
	PDFSize      int64
	CreatedBy    int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows plan listings
type Filter struct {
	Type        string
	Category    string
	Subcategory string
	Duration    string
	IsActive    *bool
}
