package entity

import (
	"time2gather/core/entity"

	"github.com/lib/pq"
)

type SubmissionStatus string

const (
	SubmissionStatusSucceeded SubmissionStatus = "succeeded"
	SubmissionStatusFailed    SubmissionStatus = "failed"
	SubmissionStatusSkipped   SubmissionStatus = "skipped"
)

// MeetingSubmission records the outcome of one submit. Selection and location votes are sent
// independently, so either status may fail on its own.
type MeetingSubmission struct {
	MeetingCode     string           `db:"meeting_code" json:"meeting_code"`
	UserID          int64            `db:"user_id" json:"user_id"`
	SelectionType   SelectionType    `db:"selection_type" json:"selection_type"`
	Dates           pq.StringArray   `db:"dates" json:"dates"`
	LocationIDs     pq.Int64Array    `db:"location_ids" json:"location_ids"`
	SelectionStatus SubmissionStatus `db:"selection_status" json:"selection_status"`
	LocationStatus  SubmissionStatus `db:"location_status" json:"location_status"`
	ErrorMessage    *string          `db:"error_message" json:"error_message,omitempty"`
	entity.BaseEntity
}

type PaginatedSubmissionEntity = entity.Pagination[MeetingSubmission]

func NewSubmissionPage(items []MeetingSubmission, totalItems, pageNumber, pageSize int) *PaginatedSubmissionEntity {
	return entity.NewPagination(items, totalItems, pageNumber, pageSize)
}
