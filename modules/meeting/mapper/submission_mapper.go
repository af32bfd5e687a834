package mapper

import (
	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/entity"
)

func ToSubmissionResponse(s *entity.MeetingSubmission) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		ID:              s.ID.String(),
		MeetingCode:     s.MeetingCode,
		UserID:          s.UserID,
		SelectionType:   s.SelectionType,
		Dates:           []string(s.Dates),
		LocationIDs:     []int64(s.LocationIDs),
		SelectionStatus: s.SelectionStatus,
		LocationStatus:  s.LocationStatus,
		CreatedAt:       s.CreatedAt,
	}
	if resp.Dates == nil {
		resp.Dates = []string{}
	}
	if resp.LocationIDs == nil {
		resp.LocationIDs = []int64{}
	}
	if s.ErrorMessage != nil {
		resp.ErrorMessage = *s.ErrorMessage
	}
	return resp
}

func ToPaginatedSubmissionResponse(page *entity.PaginatedSubmissionEntity) *dto.PaginatedSubmissionResponse {
	items := make([]dto.SubmissionResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToSubmissionResponse(&page.Items[i]))
	}
	return &dto.PaginatedSubmissionResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

// ToDraftResponse renders a draft with its derived axes and the submission it would send.
func ToDraftResponse(d *entity.Draft, dates []entity.DateKey, axis []entity.TimeSlot, submission entity.Submission, schedule entity.Schedule, action string) *dto.DraftResponse {
	selection := d.Selection
	if selection == nil {
		selection = entity.Selection{}
	}
	return &dto.DraftResponse{
		ID:            d.ID,
		MeetingCode:   d.MeetingCode,
		Type:          d.Type,
		Dates:         dates,
		TimeAxis:      axis,
		Selection:     selection,
		SelectedCount: selection.Count(),
		Schedule:      schedule,
		LocationIDs:   d.LocationIDs,
		Action:        action,
		Submission:    submission,
		UpdatedAt:     d.UpdatedAt,
	}
}
