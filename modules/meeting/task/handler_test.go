package task

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"time2gather/core/cache"
	"time2gather/core/constants"
	"time2gather/core/errors"
	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/entity"

	"github.com/hibiken/asynq"
)

type stubUpstream struct {
	detail *entity.MeetingDetail
	err    *errors.AppError
}

func (s *stubUpstream) CreateMeeting(context.Context, string, *dto.UpstreamCreateMeetingRequest) (*entity.CreatedMeeting, *errors.AppError) {
	return nil, nil
}

func (s *stubUpstream) GetMeeting(context.Context, string, string) (*entity.MeetingDetail, *errors.AppError) {
	return s.detail, s.err
}

func (s *stubUpstream) GetMySelections(context.Context, string, string) (entity.Selection, *errors.AppError) {
	return nil, nil
}

func (s *stubUpstream) PutSelections(context.Context, string, string, entity.Submission) *errors.AppError {
	return nil
}

func (s *stubUpstream) GetLocationSelections(context.Context, string, string) ([]int64, *errors.AppError) {
	return nil, nil
}

func (s *stubUpstream) PutLocationSelections(context.Context, string, string, []int64) *errors.AppError {
	return nil
}

func (s *stubUpstream) ConfirmMeeting(context.Context, string, string, *dto.UpstreamConfirmRequest) *errors.AppError {
	return nil
}

type memCache struct {
	data map[string][]byte
	ttl  map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memCache) GetJSON(_ context.Context, key string, dest any) error {
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.ttl[key] = ttl
	return nil
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) UpdateJSON(_ context.Context, key string, ttl time.Duration, update cache.UpdateFunc) error {
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	value, err := update(raw)
	if err != nil || value == nil {
		return err
	}
	return m.SetJSON(context.Background(), key, value, ttl)
}

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) PutJSON(_ context.Context, key string, body []byte) error {
	m.objects[key] = body
	return nil
}

func sampleDetail() *entity.MeetingDetail {
	return &entity.MeetingDetail{
		Meeting: entity.Meeting{
			Code:           "mtg_1",
			Title:          "Project Kickoff",
			AvailableDates: entity.AvailableDates{"2024-02-15": {"09:00"}},
		},
		Summary: entity.Summary{
			TotalParticipants: 2,
			BestSlots:         []entity.BestSlot{{Date: "2024-02-15", Time: "09:00", Count: 2, Percentage: "100%"}},
		},
	}
}

func TestHandleResultRefresh(t *testing.T) {
	mem := newMemCache()
	h := NewHandler(&stubUpstream{detail: sampleDetail()}, mem, &memStore{objects: map[string][]byte{}}, time.Minute)

	task, err := NewResultRefreshTask("mtg_1")
	if err != nil {
		t.Fatalf("NewResultRefreshTask: %v", err)
	}
	if err := h.HandleResultRefresh(context.Background(), task); err != nil {
		t.Fatalf("HandleResultRefresh: %v", err)
	}

	key := constants.RedisKeyResult + "mtg_1"
	var cached entity.MeetingDetail
	if err := mem.GetJSON(context.Background(), key, &cached); err != nil {
		t.Fatalf("expected cached payload: %v", err)
	}
	if cached.Meeting.Title != "Project Kickoff" || mem.ttl[key] != time.Minute {
		t.Fatalf("unexpected cache entry %+v ttl=%s", cached.Meeting, mem.ttl[key])
	}
}

func TestHandleResultArchive(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	h := NewHandler(&stubUpstream{detail: sampleDetail()}, newMemCache(), store, 0)

	task, _ := NewResultArchiveTask("mtg_1")
	if err := h.HandleResultArchive(context.Background(), task); err != nil {
		t.Fatalf("HandleResultArchive: %v", err)
	}

	body, ok := store.objects["results/mtg_1/project-kickoff.json"]
	if !ok {
		t.Fatalf("expected archive object, got keys %v", store.objects)
	}
	var result entity.MeetingResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("archive is not JSON: %v", err)
	}
	if len(result.Groups) != 1 || result.Locale != constants.DefaultLocale {
		t.Fatalf("unexpected archived result %+v", result)
	}
}

func TestHandleResultRefresh_UpstreamError(t *testing.T) {
	upstreamErr := errors.NewAppError(errors.ErrUpstream, "down", nil)
	h := NewHandler(&stubUpstream{err: upstreamErr}, newMemCache(), &memStore{objects: map[string][]byte{}}, 0)

	task, _ := NewResultRefreshTask("mtg_1")
	if err := h.HandleResultRefresh(context.Background(), task); err == nil {
		t.Fatalf("expected upstream error to be returned for retry")
	}
}

func TestBadPayloadSkipsRetry(t *testing.T) {
	h := NewHandler(&stubUpstream{}, newMemCache(), &memStore{objects: map[string][]byte{}}, 0)
	task := asynq.NewTask(constants.TaskMeetingResultRefresh, []byte(`{`))

	err := h.HandleResultRefresh(context.Background(), task)
	if err == nil || !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestArchiveKey(t *testing.T) {
	if got := ArchiveKey("mtg_1", "Team Lunch!"); got != "results/mtg_1/team-lunch.json" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := ArchiveKey("mtg_1", "!!!"); got != "results/mtg_1/result.json" {
		t.Fatalf("unexpected fallback key %s", got)
	}
	if _, err := NewResultArchiveTask(""); err == nil {
		t.Fatalf("expected error for empty code")
	}
}
