package router

import (
	"time2gather/core/middleware"
	"time2gather/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	MeetingController *controller.MeetingController
}

func NewMeetingRouter(meetingController *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{
		MeetingController: meetingController,
	}
}

// Setup registers meeting routes
func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1", mw.LocaleMiddleware())
	meetings := v1.Group("/meetings")

	meetings.POST("", r.MeetingController.CreateMeeting, mw.AuthMiddleware())
	meetings.GET("/:code/result", r.MeetingController.GetResult, mw.OptionalAuthMiddleware())
	meetings.PUT("/:code/confirm", r.MeetingController.ConfirmMeeting, mw.AuthMiddleware())
	meetings.GET("/:code/submissions", r.MeetingController.ListSubmissions, mw.AuthMiddleware())

	// Drafts
	drafts := meetings.Group("/:code/drafts", mw.AuthMiddleware())
	drafts.POST("", r.MeetingController.StartDraft)
	drafts.GET("/:draftId", r.MeetingController.GetDraft)
	drafts.POST("/:draftId/cells", r.MeetingController.ToggleCell)
	drafts.POST("/:draftId/range", r.MeetingController.ToggleRange)
	drafts.POST("/:draftId/dates/:date", r.MeetingController.ToggleDateHeader)
	drafts.POST("/:draftId/submit", r.MeetingController.SubmitDraft)
	drafts.DELETE("/:draftId", r.MeetingController.DiscardDraft)
}
