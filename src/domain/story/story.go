package story

import "time"

// Story is one marketing story shown on the campaign site, with an S3-hosted
// image
type Story struct {
	ID        int
	Title     string
	Body      string
	ImageKey  string
	ImageName string
	IsActive  bool
	CreatedBy int
	CreatedAt time.Time
	UpdatedAt time.Time
}
