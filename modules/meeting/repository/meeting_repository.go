package repository

import (
	"context"

	"time2gather/core/database"
	"time2gather/core/logger"
	"time2gather/core/params"
	"time2gather/modules/meeting/entity"
)

// SubmissionRepository is the local ledger of submits made through this service. The upstream API stays
// the source of truth for selections; the ledger only records what was attempted and how it ended.
type SubmissionRepository struct {
	DB database.IDatabase
}

func NewSubmissionRepository(db database.IDatabase) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, submission *entity.MeetingSubmission) (*entity.MeetingSubmission, error)
	ListByMeeting(ctx context.Context, meetingCode string, params params.QueryParams) (*entity.PaginatedSubmissionEntity, error)
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *entity.MeetingSubmission) (*entity.MeetingSubmission, error) {
	query := `
		INSERT INTO meeting_submissions (id, meeting_code, user_id, selection_type, dates, location_ids,
		                                 selection_status, location_status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, meeting_code, user_id, selection_type, dates, location_ids,
		          selection_status, location_status, error_message, created_at, updated_at
	`

	var created entity.MeetingSubmission
	err := r.DB.GetContext(ctx, &created, query,
		submission.ID, submission.MeetingCode, submission.UserID, submission.SelectionType,
		submission.Dates, submission.LocationIDs, submission.SelectionStatus, submission.LocationStatus,
		submission.ErrorMessage)
	if err != nil {
		logger.Error("SubmissionRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *SubmissionRepository) ListByMeeting(ctx context.Context, meetingCode string, params params.QueryParams) (*entity.PaginatedSubmissionEntity, error) {
	baseQuery := `FROM meeting_submissions WHERE meeting_code = $1`

	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, meetingCode)
	if err != nil {
		logger.Error("SubmissionRepository:ListByMeeting:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT id, meeting_code, user_id, selection_type, dates, location_ids,
		       selection_status, location_status, error_message, created_at, updated_at
		` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var submissions []entity.MeetingSubmission
	err = r.DB.SelectContext(ctx, &submissions, query, meetingCode, params.PageSize, params.Offset())
	if err != nil {
		logger.Error("SubmissionRepository:ListByMeeting:Select:Error:", err)
		return nil, err
	}

	return entity.NewSubmissionPage(submissions, totalItems, params.PageNumber, params.PageSize), nil
}
