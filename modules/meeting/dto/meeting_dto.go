package dto

import (
	"time"

	"time2gather/modules/meeting/entity"
)

// ===================== Request DTOs =====================

// CreateMeetingRequest is the host's create form. Times use the 12-hour pickers; leaving them empty makes
// an all-day meeting.
type CreateMeetingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timezone    string   `json:"timezone"`
	Dates       []string `json:"dates"`
	StartTime   string   `json:"startTime"`
	StartAmPm   string   `json:"startAmPm"`
	EndTime     string   `json:"endTime"`
	EndAmPm     string   `json:"endAmPm"`
}

func (r *CreateMeetingRequest) IsAllDay() bool {
	return r.StartTime == "" && r.EndTime == ""
}

type CellRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ToggleRangeRequest carries either an explicit cell list or the two corners of a drag.
type ToggleRangeRequest struct {
	Cells []CellRequest `json:"cells"`
	Start *CellRequest  `json:"start"`
	End   *CellRequest  `json:"end"`
}

// SubmitDraftRequest optionally carries location votes. A missing locationIds skips the vote; an empty
// list clears it.
type SubmitDraftRequest struct {
	LocationIDs []int64 `json:"locationIds"`
}

type ConfirmMeetingRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ===================== Response DTOs =====================

type DraftResponse struct {
	ID            string               `json:"id"`
	MeetingCode   string               `json:"meetingCode"`
	Type          entity.SelectionType `json:"type"`
	Dates         []entity.DateKey     `json:"dates"`
	TimeAxis      []entity.TimeSlot    `json:"timeAxis"`
	Selection     entity.Selection     `json:"selection"`
	SelectedCount int                  `json:"selectedCount"`
	Schedule      entity.Schedule      `json:"schedule,omitempty"`
	LocationIDs   []int64              `json:"locationIds,omitempty"`
	Action        string               `json:"action,omitempty"`
	Submission    entity.Submission    `json:"submission"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type PartResult struct {
	Status entity.SubmissionStatus `json:"status"`
	Error  string                  `json:"error,omitempty"`
}

// SubmitResponse reports each half of a submit. Neither half is rolled back when the other fails.
type SubmitResponse struct {
	SubmissionID string     `json:"submissionId"`
	MeetingCode  string     `json:"meetingCode"`
	Selection    PartResult `json:"selection"`
	Location     PartResult `json:"location"`
}

func (r *SubmitResponse) Partial() bool {
	return r.Selection.Status == entity.SubmissionStatusFailed || r.Location.Status == entity.SubmissionStatusFailed
}

type SubmissionResponse struct {
	ID              string                  `json:"id"`
	MeetingCode     string                  `json:"meetingCode"`
	UserID          int64                   `json:"userId"`
	SelectionType   entity.SelectionType    `json:"selectionType"`
	Dates           []string                `json:"dates"`
	LocationIDs     []int64                 `json:"locationIds"`
	SelectionStatus entity.SubmissionStatus `json:"selectionStatus"`
	LocationStatus  entity.SubmissionStatus `json:"locationStatus"`
	ErrorMessage    string                  `json:"errorMessage,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
}

type PaginatedSubmissionResponse struct {
	Items      []SubmissionResponse `json:"items"`
	TotalItems int                  `json:"total_items"`
	TotalPages int                  `json:"total_pages"`
	PageNumber int                  `json:"page_number"`
	PageSize   int                  `json:"page_size"`
}
