package notification

import "time"

// Status of one notification dispatch attempt
const (
	StatusSent      = "Sent"
	StatusFailed    = "Failed"
	StatusRetrySent = "RetrySent"
)

// MaxRetryCount caps how often a failed dispatch is retried
const MaxRetryCount = 3

// Log is one durable record of a dispatch attempt and its outcome.
// Retries update status and retry_count on the same row instead of appending
// new rows.
type Log struct {
	ID             int
	ChallengerID   int
	Mobile         string
	CountryCode    string
	Duration       string
	DurationActual int // cached DurationDays(Duration)
	Status         string
	RetryCount     int
	Payload        string // outbound provider payload, stored verbatim
	ResponseData   string // raw provider response
	ResponseID     string // provider message id
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WebhookLog records one delivery-status callback from the provider.
// (message_id, status) is unique; repeated callbacks for the same pair are
// no-ops.
type WebhookLog struct {
	ID           int
	MessageID    string
	Status       string
	ResponseData string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RetryCandidate joins a failed ledger row with its originating challenger so
// the retry pipeline can rebuild the dispatch
type RetryCandidate struct {
	Log            Log
	ChallengerName string
	Mobile         string
	CountryCode    string
	Duration       string
}
