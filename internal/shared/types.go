package shared

import "time"

// Task types xử lý bởi cmd/worker
const (
	TypeSendResetEmail    = "email:reset_password"
	TypeDeleteImage       = "image:delete"
	TypeSweepOrphanImages = "image:sweep_orphans"
)

// Queues
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Redis key namespaces
const (
	RedisPrefix          = "bloggerum:"
	SessionKeyPrefix     = RedisPrefix + "sess:"
	ForgotPasswordPrefix = "forgot-password:"
	UserCachePrefix      = RedisPrefix + "user:"
)

// DeleteImagePayload là payload của task image:delete.
// Ref có thể là URL public hoặc object key.
type DeleteImagePayload struct {
	Ref       string    `json:"ref"`
	Reason    string    `json:"reason"`
	QueuedAt  time.Time `json:"queuedAt"`
	RequestID string    `json:"requestId,omitempty"`
}

// SweepOrphanImagesPayload cấu hình một lần quét ảnh mồ côi
type SweepOrphanImagesPayload struct {
	Prefix    string `json:"prefix"`
	MinAgeHrs int    `json:"minAgeHours"`
}
