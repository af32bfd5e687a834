package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"time2gather/core/cache"
	"time2gather/core/constants"
	"time2gather/core/logger"
	"time2gather/core/storage"
	"time2gather/modules/meeting/client"
	"time2gather/modules/meeting/service"

	"github.com/gosimple/slug"
	"github.com/hibiken/asynq"
)

// Handler runs result tasks. Workers call the upstream anonymously, so only publicly readable meetings
// can be refreshed or archived.
type Handler struct {
	client    client.UpstreamClient
	cache     cache.Cache
	store     storage.ObjectStore
	resultTTL time.Duration
	now       func() time.Time
}

func NewHandler(upstream client.UpstreamClient, store cache.Cache, objects storage.ObjectStore, resultTTL time.Duration) *Handler {
	if resultTTL <= 0 {
		resultTTL = constants.DefaultResultTTL
	}
	return &Handler{
		client:    upstream,
		cache:     store,
		store:     objects,
		resultTTL: resultTTL,
		now:       time.Now,
	}
}

func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskMeetingResultRefresh, h.HandleResultRefresh)
	mux.HandleFunc(constants.TaskMeetingResultArchive, h.HandleResultArchive)
}

// HandleResultRefresh re-fetches the meeting and replaces the cached payload.
func (h *Handler) HandleResultRefresh(ctx context.Context, t *asynq.Task) error {
	p, err := parsePayload(t)
	if err != nil {
		return err
	}

	detail, appErr := h.client.GetMeeting(ctx, "", p.MeetingCode)
	if appErr != nil {
		logger.Error("Task:HandleResultRefresh:GetMeeting", "code", p.MeetingCode, "error", appErr)
		return appErr
	}
	if err := h.cache.SetJSON(ctx, service.ResultKey(p.MeetingCode), detail, h.resultTTL); err != nil {
		logger.Error("Task:HandleResultRefresh:SetJSON", "code", p.MeetingCode, "error", err)
		return err
	}

	logger.Info("Result refreshed", "code", p.MeetingCode, "bestSlots", len(detail.Summary.BestSlots))
	return nil
}

// HandleResultArchive writes the grouped result of a confirmed meeting to object storage.
func (h *Handler) HandleResultArchive(ctx context.Context, t *asynq.Task) error {
	p, err := parsePayload(t)
	if err != nil {
		return err
	}

	detail, appErr := h.client.GetMeeting(ctx, "", p.MeetingCode)
	if appErr != nil {
		logger.Error("Task:HandleResultArchive:GetMeeting", "code", p.MeetingCode, "error", appErr)
		return appErr
	}

	result := service.BuildResult(detail, constants.DefaultLocale, h.now(), constants.BestSlotConfirmLimit)
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result %s: %v: %w", p.MeetingCode, err, asynq.SkipRetry)
	}

	key := ArchiveKey(p.MeetingCode, detail.Meeting.Title)
	if err := h.store.PutJSON(ctx, key, body); err != nil {
		return err
	}

	logger.Info("Result archived", "code", p.MeetingCode, "key", key, "bytes", len(body))
	return nil
}

// ArchiveKey is results/<code>/<slug of title>.json, falling back to "result" for titles that slug to
// nothing.
func ArchiveKey(meetingCode, title string) string {
	name := slug.Make(title)
	if name == "" {
		name = "result"
	}
	return fmt.Sprintf("results/%s/%s.json", meetingCode, name)
}
