package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"time2gather/core/cache"
	"time2gather/core/constants"
	"time2gather/core/errors"
	"time2gather/core/logger"
	"time2gather/core/params"
	"time2gather/core/utils"
	"time2gather/modules/meeting/client"
	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/entity"
	"time2gather/modules/meeting/mapper"
	"time2gather/modules/meeting/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sourcegraph/conc"
)

const defaultTimezone = "Asia/Seoul"

// Viewer is the caller as seen by the service. Token is forwarded upstream; UserID is zero for
// anonymous viewers.
type Viewer struct {
	UserID int64
	Token  string
}

// Enqueuer schedules background work on meeting results.
type Enqueuer interface {
	EnqueueResultRefresh(ctx context.Context, meetingCode string) error
	EnqueueResultArchive(ctx context.Context, meetingCode string) error
}

type Options struct {
	DraftTTL  time.Duration
	ResultTTL time.Duration
}

// MeetingService orchestrates the upstream API, the draft store and the submission ledger
type MeetingService struct {
	client    client.UpstreamClient
	repo      repository.SubmissionRepositoryInterface
	cache     cache.Cache
	enqueuer  Enqueuer
	draftTTL  time.Duration
	resultTTL time.Duration
	now       func() time.Time
}

type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, viewer Viewer, req *dto.CreateMeetingRequest) (*entity.CreatedMeeting, *errors.AppError)
	GetResult(ctx context.Context, viewer Viewer, code, locale string) (*entity.MeetingResult, *errors.AppError)
	StartDraft(ctx context.Context, viewer Viewer, code string) (*dto.DraftResponse, *errors.AppError)
	GetDraft(ctx context.Context, viewer Viewer, code, draftID string) (*dto.DraftResponse, *errors.AppError)
	ToggleCell(ctx context.Context, viewer Viewer, code, draftID string, req *dto.CellRequest) (*dto.DraftResponse, *errors.AppError)
	ToggleRange(ctx context.Context, viewer Viewer, code, draftID string, req *dto.ToggleRangeRequest) (*dto.DraftResponse, *errors.AppError)
	ToggleDateHeader(ctx context.Context, viewer Viewer, code, draftID, date string) (*dto.DraftResponse, *errors.AppError)
	DiscardDraft(ctx context.Context, viewer Viewer, code, draftID string) *errors.AppError
	SubmitDraft(ctx context.Context, viewer Viewer, code, draftID string, req *dto.SubmitDraftRequest) (*dto.SubmitResponse, *errors.AppError)
	ConfirmMeeting(ctx context.Context, viewer Viewer, code string, req *dto.ConfirmMeetingRequest) (*entity.ConfirmedSlot, *errors.AppError)
	ListSubmissions(ctx context.Context, viewer Viewer, code string, params params.QueryParams) (*dto.PaginatedSubmissionResponse, *errors.AppError)
}

func NewMeetingService(
	upstream client.UpstreamClient,
	repo repository.SubmissionRepositoryInterface,
	store cache.Cache,
	enqueuer Enqueuer,
	opts Options,
) MeetingServiceInterface {
	if opts.DraftTTL <= 0 {
		opts.DraftTTL = constants.DefaultDraftTTL
	}
	if opts.ResultTTL <= 0 {
		opts.ResultTTL = constants.DefaultResultTTL
	}
	return &MeetingService{
		client:    upstream,
		repo:      repo,
		cache:     store,
		enqueuer:  enqueuer,
		draftTTL:  opts.DraftTTL,
		resultTTL: opts.ResultTTL,
		now:       time.Now,
	}
}

func draftKey(draftID string) string {
	return constants.RedisKeyDraft + draftID
}

// ResultKey is the cache key of a meeting's validated upstream payload.
func ResultKey(code string) string {
	return constants.RedisKeyResult + code
}

// ===================== Meetings =====================

func (s *MeetingService) CreateMeeting(ctx context.Context, viewer Viewer, req *dto.CreateMeetingRequest) (*entity.CreatedMeeting, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	available, appErr := BuildAvailableDates(req)
	if appErr != nil {
		return nil, appErr
	}

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = defaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown timezone", err)
	}

	created, appErr := s.client.CreateMeeting(ctx, viewer.Token, &dto.UpstreamCreateMeetingRequest{
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Timezone:       timezone,
		AvailableDates: mapper.ToUpstreamAvailableDates(available),
	})
	if appErr != nil {
		logger.Error("MeetingService:CreateMeeting:Upstream", appErr)
		return nil, appErr
	}

	logger.Info("Meeting created", "code", created.MeetingCode, "dates", len(available), "allDay", available.IsAllDay())
	return created, nil
}

// BuildAvailableDates expands the create form into the candidate space. Every picked date gets the same
// hourly range; an empty range makes every date all-day.
func BuildAvailableDates(req *dto.CreateMeetingRequest) (entity.AvailableDates, *errors.AppError) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}
	if len(req.Dates) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "at least one date is required", nil)
	}

	var slots []entity.TimeSlot
	if !req.IsAllDay() {
		start, err := ConvertTo24Hour(req.StartTime, AmPm(strings.ToUpper(req.StartAmPm)))
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid start time", err)
		}
		end, err := ConvertTo24Hour(req.EndTime, AmPm(strings.ToUpper(req.EndAmPm)))
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid end time", err)
		}
		if !IsTimeAfter(end, start) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "end time must not be before start time", nil)
		}
		slots = GetTimeRangeSlots(start, end)
		if len(slots) == 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "time range must start and end on the hour", nil)
		}
	}

	available := make(entity.AvailableDates, len(req.Dates))
	for _, d := range req.Dates {
		date := entity.DateKey(strings.TrimSpace(d))
		if !IsValidDateKey(date) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid date "+d, nil)
		}
		if slots == nil {
			available[date] = nil
			continue
		}
		daySlots := make([]entity.TimeSlot, len(slots))
		copy(daySlots, slots)
		available[date] = daySlots
	}
	return available, nil
}

func (s *MeetingService) GetResult(ctx context.Context, viewer Viewer, code, locale string) (*entity.MeetingResult, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	detail, appErr := s.cachedMeeting(ctx, viewer, code)
	if appErr != nil {
		return nil, appErr
	}
	if locale != constants.LocaleEN {
		locale = constants.LocaleKO
	}
	return BuildResult(detail, locale, s.now(), constants.BestSlotConfirmLimit), nil
}

// cachedMeeting reads the validated payload through the result cache. Cache failures fall back to the
// upstream call.
func (s *MeetingService) cachedMeeting(ctx context.Context, viewer Viewer, code string) (*entity.MeetingDetail, *errors.AppError) {
	var detail entity.MeetingDetail
	err := s.cache.GetJSON(ctx, ResultKey(code), &detail)
	if err == nil {
		return &detail, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("MeetingService:cachedMeeting:GetJSON", "code", code, "error", err)
	}

	fetched, appErr := s.client.GetMeeting(ctx, viewer.Token, code)
	if appErr != nil {
		return nil, appErr
	}
	if err := s.cache.SetJSON(ctx, ResultKey(code), fetched, s.resultTTL); err != nil {
		logger.Warn("MeetingService:cachedMeeting:SetJSON", "code", code, "error", err)
	}
	return fetched, nil
}

func (s *MeetingService) invalidateResult(ctx context.Context, code string) {
	if err := s.cache.Del(ctx, ResultKey(code)); err != nil {
		logger.Warn("MeetingService:invalidateResult", "code", code, "error", err)
	}
}

// ===================== Drafts =====================

// StartDraft opens an editing session seeded with the viewer's prior picks and location votes.
func (s *MeetingService) StartDraft(ctx context.Context, viewer Viewer, code string) (*dto.DraftResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	detail, appErr := s.client.GetMeeting(ctx, viewer.Token, code)
	if appErr != nil {
		return nil, appErr
	}
	if detail.Meeting.Confirmed != nil {
		return nil, errors.NewAppError(errors.ErrMeetingAlreadyConfirmed, "meeting is already confirmed", nil)
	}

	available := detail.Meeting.AvailableDates
	var (
		prior       entity.Selection
		priorErr    *errors.AppError
		locationIDs []int64
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		prior, priorErr = s.client.GetMySelections(ctx, viewer.Token, code)
	})
	if len(detail.Locations) > 0 {
		wg.Go(func() {
			ids, err := s.client.GetLocationSelections(ctx, viewer.Token, code)
			if err != nil {
				logger.Warn("MeetingService:StartDraft:GetLocationSelections", "code", code, "error", err)
				return
			}
			locationIDs = ids
		})
	}
	wg.Wait()

	if priorErr != nil {
		logger.Warn("MeetingService:StartDraft:GetMySelections:Fallback", "code", code, "error", priorErr)
		prior = SelectionFromSchedule(detail.Schedule, available, viewer.UserID)
	}

	model := NewSelectionModel(available, prior)
	now := s.now()
	draft := &entity.Draft{
		ID:          utils.GenerateID(),
		MeetingCode: code,
		UserID:      viewer.UserID,
		Type:        available.SelectionType(),
		Available:   available,
		Selection:   model.Selection(),
		LocationIDs: locationIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if appErr := s.saveDraft(ctx, draft); appErr != nil {
		return nil, appErr
	}

	logger.Info("Draft started", "code", code, "draftId", draft.ID, "userId", viewer.UserID, "prior", model.Selection().Count())
	schedule := AdjustScheduleForViewer(detail.Schedule, viewer.UserID)
	return mapper.ToDraftResponse(draft, model.Dates(), model.TimeAxis(), model.Submission(), schedule, ""), nil
}

func (s *MeetingService) GetDraft(ctx context.Context, viewer Viewer, code, draftID string) (*dto.DraftResponse, *errors.AppError) {
	draft, appErr := s.loadDraft(ctx, viewer, code, draftID)
	if appErr != nil {
		return nil, appErr
	}
	model := NewSelectionModel(draft.Available, draft.Selection)
	return mapper.ToDraftResponse(draft, model.Dates(), model.TimeAxis(), model.Submission(), nil, ""), nil
}

func (s *MeetingService) ToggleCell(ctx context.Context, viewer Viewer, code, draftID string, req *dto.CellRequest) (*dto.DraftResponse, *errors.AppError) {
	cell, appErr := parseCell(req)
	if appErr != nil {
		return nil, appErr
	}
	return s.mutateDraft(ctx, viewer, code, draftID, func(m *SelectionModel) RangeAction {
		if !m.ToggleCell(cell.Date, cell.Time) {
			return ActionNone
		}
		if m.Selection().Has(cell.Date, cell.Time) {
			return ActionSelect
		}
		return ActionDeselect
	})
}

// ToggleRange applies the all-or-nothing rule to explicit cells or to the rectangle between a drag's
// start and end cells.
func (s *MeetingService) ToggleRange(ctx context.Context, viewer Viewer, code, draftID string, req *dto.ToggleRangeRequest) (*dto.DraftResponse, *errors.AppError) {
	var (
		start, end *entity.Cell
		cells      []entity.Cell
	)
	switch {
	case req.Start != nil && req.End != nil:
		a, appErr := parseCell(req.Start)
		if appErr != nil {
			return nil, appErr
		}
		b, appErr := parseCell(req.End)
		if appErr != nil {
			return nil, appErr
		}
		start, end = &a, &b
	case len(req.Cells) > 0:
		cells = make([]entity.Cell, 0, len(req.Cells))
		for i := range req.Cells {
			c, appErr := parseCell(&req.Cells[i])
			if appErr != nil {
				return nil, appErr
			}
			cells = append(cells, c)
		}
	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "either cells or start and end are required", nil)
	}

	return s.mutateDraft(ctx, viewer, code, draftID, func(m *SelectionModel) RangeAction {
		if start != nil {
			return m.ToggleRange(m.DragRange(*start, *end))
		}
		return m.ToggleRange(cells)
	})
}

func (s *MeetingService) ToggleDateHeader(ctx context.Context, viewer Viewer, code, draftID, date string) (*dto.DraftResponse, *errors.AppError) {
	if !IsValidDateKey(entity.DateKey(date)) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid date", nil)
	}
	return s.mutateDraft(ctx, viewer, code, draftID, func(m *SelectionModel) RangeAction {
		return m.ToggleDateHeader(entity.DateKey(date))
	})
}

func (s *MeetingService) DiscardDraft(ctx context.Context, viewer Viewer, code, draftID string) *errors.AppError {
	if _, appErr := s.loadDraft(ctx, viewer, code, draftID); appErr != nil {
		return appErr
	}
	if err := s.cache.Del(ctx, draftKey(draftID)); err != nil {
		logger.Error("MeetingService:DiscardDraft:Del", err)
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to discard draft", err)
	}
	return nil
}

// mutateDraft applies one toggle as an atomic update of the stored draft, so overlapping toggles on
// the same draft (drag moves, rapid clicks) all land.
func (s *MeetingService) mutateDraft(ctx context.Context, viewer Viewer, code, draftID string, apply func(*SelectionModel) RangeAction) (*dto.DraftResponse, *errors.AppError) {
	var (
		draft  *entity.Draft
		model  *SelectionModel
		action RangeAction
		appErr *errors.AppError
	)
	err := s.cache.UpdateJSON(ctx, draftKey(draftID), s.draftTTL, func(raw []byte) (any, error) {
		appErr = nil
		var stored entity.Draft
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, err
		}
		if appErr = checkDraft(&stored, viewer, code); appErr != nil {
			return nil, appErr
		}

		draft = &stored
		model = NewSelectionModel(draft.Available, draft.Selection)
		action = apply(model)
		if action == ActionNone {
			return nil, nil
		}
		draft.Selection = model.Selection()
		draft.UpdatedAt = s.now()
		return draft, nil
	})
	if err != nil {
		switch {
		case appErr != nil:
			return nil, appErr
		case errors.Is(err, cache.ErrCacheMiss):
			return nil, errors.NewAppError(errors.ErrNotFound, "draft not found or expired", nil)
		case errors.Is(err, cache.ErrConflict):
			logger.Warn("MeetingService:mutateDraft:Conflict", "draftId", draftID)
			return nil, errors.NewAppError(errors.ErrDraftConflict, "draft is being edited concurrently, retry", err)
		}
		logger.Error("MeetingService:mutateDraft:UpdateJSON", err)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save draft", err)
	}
	return mapper.ToDraftResponse(draft, model.Dates(), model.TimeAxis(), model.Submission(), nil, string(action)), nil
}

func (s *MeetingService) loadDraft(ctx context.Context, viewer Viewer, code, draftID string) (*entity.Draft, *errors.AppError) {
	var draft entity.Draft
	if err := s.cache.GetJSON(ctx, draftKey(draftID), &draft); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, errors.NewAppError(errors.ErrNotFound, "draft not found or expired", nil)
		}
		logger.Error("MeetingService:loadDraft:GetJSON", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load draft", err)
	}
	if appErr := checkDraft(&draft, viewer, code); appErr != nil {
		return nil, appErr
	}
	return &draft, nil
}

// checkDraft scopes a stored draft to its meeting and owner.
func checkDraft(draft *entity.Draft, viewer Viewer, code string) *errors.AppError {
	if draft.MeetingCode != code {
		return errors.NewAppError(errors.ErrNotFound, "draft not found or expired", nil)
	}
	if draft.UserID != viewer.UserID {
		return errors.NewAppError(errors.ErrForbidden, "draft belongs to another participant", nil)
	}
	if draft.Selection == nil {
		draft.Selection = entity.Selection{}
	}
	return nil
}

// saveDraft writes the draft and restarts its TTL.
func (s *MeetingService) saveDraft(ctx context.Context, draft *entity.Draft) *errors.AppError {
	if err := s.cache.SetJSON(ctx, draftKey(draft.ID), draft, s.draftTTL); err != nil {
		logger.Error("MeetingService:saveDraft:SetJSON", err)
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to save draft", err)
	}
	return nil
}

func parseCell(req *dto.CellRequest) (entity.Cell, *errors.AppError) {
	cell := entity.Cell{Date: entity.DateKey(req.Date), Time: entity.TimeSlot(req.Time)}
	if !IsValidDateKey(cell.Date) {
		return cell, errors.NewAppError(errors.ErrInvalidInput, "invalid date", nil)
	}
	if cell.Time != entity.AllDay && !IsValidTimeSlot(cell.Time) {
		return cell, errors.NewAppError(errors.ErrInvalidInput, "invalid time", nil)
	}
	return cell, nil
}

// ===================== Submission =====================

// SubmitDraft sends the selection and, when there are any, the location votes concurrently. Votes come
// from the request, else from the ones seeded into the draft. Both calls are awaited; a failure of one
// does not roll back the other and nothing is retried.
func (s *MeetingService) SubmitDraft(ctx context.Context, viewer Viewer, code, draftID string, req *dto.SubmitDraftRequest) (*dto.SubmitResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	draft, appErr := s.loadDraft(ctx, viewer, code, draftID)
	if appErr != nil {
		return nil, appErr
	}

	submission := BuildSubmission(draft.Available, draft.Selection)
	if len(submission.Selections) == 0 {
		return nil, errors.NewAppError(errors.ErrEmptySelection, "select at least one slot before submitting", nil)
	}

	locationIDs := draft.LocationIDs
	if req != nil && req.LocationIDs != nil {
		locationIDs = req.LocationIDs
	}

	var selectionErr, locationErr *errors.AppError
	var wg conc.WaitGroup
	wg.Go(func() {
		selectionErr = s.client.PutSelections(ctx, viewer.Token, code, submission)
	})
	if locationIDs != nil {
		wg.Go(func() {
			locationErr = s.client.PutLocationSelections(ctx, viewer.Token, code, locationIDs)
		})
	}
	wg.Wait()

	resp := &dto.SubmitResponse{
		MeetingCode: code,
		Selection:   partResult(selectionErr, true),
		Location:    partResult(locationErr, locationIDs != nil),
	}

	record := s.recordSubmission(ctx, viewer, draft, submission, locationIDs, resp)
	if record != nil {
		resp.SubmissionID = record.ID.String()
	}

	if selectionErr != nil {
		logger.Error("MeetingService:SubmitDraft:PutSelections", "code", code, "draftId", draftID, "error", selectionErr)
		if selectionErr.Code == errors.ErrMeetingAlreadyConfirmed || locationErr != nil || locationIDs == nil {
			return nil, selectionErr
		}
		return resp, nil
	}
	if locationErr != nil {
		logger.Warn("MeetingService:SubmitDraft:PutLocationSelections", "code", code, "draftId", draftID, "error", locationErr)
	}

	if err := s.cache.Del(ctx, draftKey(draftID)); err != nil {
		logger.Warn("MeetingService:SubmitDraft:DeleteDraft", "draftId", draftID, "error", err)
	}
	s.invalidateResult(ctx, code)
	if err := s.enqueuer.EnqueueResultRefresh(ctx, code); err != nil {
		logger.Warn("MeetingService:SubmitDraft:EnqueueResultRefresh", "code", code, "error", err)
	}

	logger.Info("Selection submitted", "code", code, "userId", viewer.UserID, "dates", len(submission.Selections), "partial", resp.Partial())
	return resp, nil
}

func partResult(appErr *errors.AppError, attempted bool) dto.PartResult {
	if !attempted {
		return dto.PartResult{Status: entity.SubmissionStatusSkipped}
	}
	if appErr != nil {
		return dto.PartResult{Status: entity.SubmissionStatusFailed, Error: appErr.Message}
	}
	return dto.PartResult{Status: entity.SubmissionStatusSucceeded}
}

// recordSubmission writes the ledger row. The ledger is informational, so failures are only logged.
func (s *MeetingService) recordSubmission(
	ctx context.Context,
	viewer Viewer,
	draft *entity.Draft,
	submission entity.Submission,
	locationIDs []int64,
	resp *dto.SubmitResponse,
) *entity.MeetingSubmission {
	dates := make([]string, 0, len(submission.Selections))
	for _, e := range submission.Selections {
		dates = append(dates, string(e.Date))
	}

	row := &entity.MeetingSubmission{
		MeetingCode:     draft.MeetingCode,
		UserID:          viewer.UserID,
		SelectionType:   draft.Type,
		Dates:           dates,
		LocationIDs:     append(pq.Int64Array{}, locationIDs...), // column is NOT NULL
		SelectionStatus: resp.Selection.Status,
		LocationStatus:  resp.Location.Status,
	}
	row.ID = uuid.New()
	if msg := strings.TrimSpace(strings.Join([]string{resp.Selection.Error, resp.Location.Error}, " ")); msg != "" {
		row.ErrorMessage = &msg
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		logger.Error("MeetingService:recordSubmission:Create", err)
		return nil
	}
	return created
}

// ===================== Confirmation =====================

// ConfirmMeeting lets the host lock in one of the top ranked slots.
func (s *MeetingService) ConfirmMeeting(ctx context.Context, viewer Viewer, code string, req *dto.ConfirmMeetingRequest) (*entity.ConfirmedSlot, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	detail, appErr := s.hostMeeting(ctx, viewer, code)
	if appErr != nil {
		return nil, appErr
	}
	if detail.Meeting.Confirmed != nil {
		return nil, errors.NewAppError(errors.ErrMeetingAlreadyConfirmed, "meeting is already confirmed", nil)
	}

	allDay := detail.Meeting.AvailableDates.IsAllDay()
	slot := entity.ConfirmedSlot{Date: entity.DateKey(req.Date), Time: entity.TimeSlot(req.Time)}
	if allDay {
		slot.Time = entity.AllDay
	}

	if !isTopSlot(detail.Summary.BestSlots, slot) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "slot is not one of the best slots", nil)
	}

	body := &dto.UpstreamConfirmRequest{Date: string(slot.Date)}
	if !allDay {
		index, ok := TimeToSlotIndex(slot.Time)
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "time must be on a half-hour boundary", nil)
		}
		body.SlotIndex = &index
	}

	if appErr := s.client.ConfirmMeeting(ctx, viewer.Token, code, body); appErr != nil {
		logger.Error("MeetingService:ConfirmMeeting:Upstream", "code", code, "error", appErr)
		return nil, appErr
	}

	s.invalidateResult(ctx, code)
	if err := s.enqueuer.EnqueueResultArchive(ctx, code); err != nil {
		logger.Warn("MeetingService:ConfirmMeeting:EnqueueResultArchive", "code", code, "error", err)
	}

	logger.Info("Meeting confirmed", "code", code, "date", slot.Date, "time", slot.Time)
	return &slot, nil
}

func isTopSlot(best []entity.BestSlot, slot entity.ConfirmedSlot) bool {
	for _, b := range TopSlots(best, constants.BestSlotConfirmLimit) {
		if b.Date == slot.Date && b.Time == slot.Time {
			return true
		}
	}
	return false
}

// hostMeeting fetches the meeting and checks the viewer hosts it.
func (s *MeetingService) hostMeeting(ctx context.Context, viewer Viewer, code string) (*entity.MeetingDetail, *errors.AppError) {
	detail, appErr := s.client.GetMeeting(ctx, viewer.Token, code)
	if appErr != nil {
		return nil, appErr
	}
	if viewer.UserID == 0 || detail.Meeting.Host.ID != viewer.UserID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the host can do this", nil)
	}
	return detail, nil
}

func (s *MeetingService) ListSubmissions(ctx context.Context, viewer Viewer, code string, params params.QueryParams) (*dto.PaginatedSubmissionResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if _, appErr := s.hostMeeting(ctx, viewer, code); appErr != nil {
		return nil, appErr
	}

	page, err := s.repo.ListByMeeting(ctx, code, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list submissions", err)
	}
	return mapper.ToPaginatedSubmissionResponse(page), nil
}
