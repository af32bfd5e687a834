package controller

import (
	"net/http"

	"time2gather/core/controller"
	"time2gather/core/errors"
	"time2gather/core/middleware"
	"time2gather/core/params"
	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// MeetingController handles meeting, draft and result HTTP requests
type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// viewerFromContext builds the service viewer from the claims the auth middlewares attached.
func viewerFromContext(ctx echo.Context) service.Viewer {
	viewer := service.Viewer{Token: middleware.RawTokenFromContext(ctx)}
	if claims, ok := middleware.ClaimsFromContext(ctx); ok {
		viewer.UserID = claims.UserID
	}
	return viewer
}

// CreateMeeting handles POST /meetings
// @Summary Create a meeting
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting form"
// @Success 201 {object} entity.CreatedMeeting
// @Failure 400 {object} controller.ErrorResponse
// @Router /meetings [post]
func (c *MeetingController) CreateMeeting(ctx echo.Context) error {
	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.MeetingService.CreateMeeting(ctx.Request().Context(), viewerFromContext(ctx), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.StatusResponse(ctx, http.StatusCreated, result, "Meeting created successfully")
}

// GetResult handles GET /meetings/:code/result
// @Summary Grouped results view
// @Tags Meeting
// @Produce json
// @Param code path string true "Meeting code"
// @Param lang query string false "ko or en"
// @Success 200 {object} entity.MeetingResult
// @Router /meetings/{code}/result [get]
func (c *MeetingController) GetResult(ctx echo.Context) error {
	locale := middleware.LocaleFromContext(ctx)
	result, appErr := c.MeetingService.GetResult(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), locale)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// StartDraft handles POST /meetings/:code/drafts
func (c *MeetingController) StartDraft(ctx echo.Context) error {
	result, appErr := c.MeetingService.StartDraft(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.StatusResponse(ctx, http.StatusCreated, result, "Draft started")
}

// GetDraft handles GET /meetings/:code/drafts/:draftId
func (c *MeetingController) GetDraft(ctx echo.Context) error {
	result, appErr := c.MeetingService.GetDraft(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), ctx.Param("draftId"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ToggleCell handles POST /meetings/:code/drafts/:draftId/cells
func (c *MeetingController) ToggleCell(ctx echo.Context) error {
	var req dto.CellRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.MeetingService.ToggleCell(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), ctx.Param("draftId"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ToggleRange handles POST /meetings/:code/drafts/:draftId/range
func (c *MeetingController) ToggleRange(ctx echo.Context) error {
	var req dto.ToggleRangeRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.MeetingService.ToggleRange(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), ctx.Param("draftId"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ToggleDateHeader handles POST /meetings/:code/drafts/:draftId/dates/:date
func (c *MeetingController) ToggleDateHeader(ctx echo.Context) error {
	result, appErr := c.MeetingService.ToggleDateHeader(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), ctx.Param("draftId"), ctx.Param("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// SubmitDraft handles POST /meetings/:code/drafts/:draftId/submit
// @Summary Submit a draft
// @Description Sends the selection and optional location votes. 207 means one half failed.
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} dto.SubmitResponse
// @Success 207 {object} dto.SubmitResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /meetings/{code}/drafts/{draftId}/submit [post]
func (c *MeetingController) SubmitDraft(ctx echo.Context) error {
	var req dto.SubmitDraftRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&req); err != nil {
			return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
		}
	}

	result, appErr := c.MeetingService.SubmitDraft(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), ctx.Param("draftId"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	if result.Partial() {
		return c.StatusResponse(ctx, http.StatusMultiStatus, result, "Submission partially failed")
	}
	return c.SuccessResponse(ctx, result, "Submitted successfully")
}

// DiscardDraft handles DELETE /meetings/:code/drafts/:draftId
func (c *MeetingController) DiscardDraft(ctx echo.Context) error {
	if appErr := c.MeetingService.DiscardDraft(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), ctx.Param("draftId")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Draft discarded")
}

// ConfirmMeeting handles PUT /meetings/:code/confirm
func (c *MeetingController) ConfirmMeeting(ctx echo.Context) error {
	var req dto.ConfirmMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.MeetingService.ConfirmMeeting(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Meeting confirmed")
}

// ListSubmissions handles GET /meetings/:code/submissions
func (c *MeetingController) ListSubmissions(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)
	result, appErr := c.MeetingService.ListSubmissions(ctx.Request().Context(), viewerFromContext(ctx), ctx.Param("code"), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
