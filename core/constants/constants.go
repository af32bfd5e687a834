package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 30 * time.Second
	UpstreamTimeout       = 8 * time.Second
	ShutdownTimeout       = 10 * time.Second
)

// Echo context keys
const (
	ContextTokenData = "token_data"
	ContextRawToken  = "raw_token"
	ContextLocale    = "locale"
)

const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis keys
const (
	RedisKeyDraft        = "time2gather:draft:"
	RedisKeyResult       = "time2gather:result:"
	DefaultDraftTTL      = 2 * time.Hour
	DefaultResultTTL     = 5 * time.Minute
	BestSlotConfirmLimit = 3
)

// Upstream error code recognised by the submission flow.
const UpstreamMeetingAlreadyConfirmed = "error.meeting.already.confirmed"

// Background task types
const (
	TaskMeetingResultRefresh = "meeting:result:refresh"
	TaskMeetingResultArchive = "meeting:result:archive"
	QueueDefault             = "default"
)

const (
	LocaleKO      = "ko"
	LocaleEN      = "en"
	DefaultLocale = LocaleKO
)
