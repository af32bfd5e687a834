package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"time2gather/core/constants"
	"time2gather/core/errors"

	"github.com/hibiken/asynq"
)

type ResultPayload struct {
	MeetingCode string `json:"meetingCode"`
}

func NewResultRefreshTask(meetingCode string) (*asynq.Task, error) {
	return newResultTask(constants.TaskMeetingResultRefresh, meetingCode)
}

func NewResultArchiveTask(meetingCode string) (*asynq.Task, error) {
	return newResultTask(constants.TaskMeetingResultArchive, meetingCode)
}

func newResultTask(typename, meetingCode string) (*asynq.Task, error) {
	if meetingCode == "" {
		return nil, fmt.Errorf("%s: meeting code is required", typename)
	}
	payload, err := json.Marshal(ResultPayload{MeetingCode: meetingCode})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, payload, asynq.MaxRetry(3), asynq.Timeout(constants.DefaultTimeout)), nil
}

func parsePayload(t *asynq.Task) (ResultPayload, error) {
	var p ResultPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("%s: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if p.MeetingCode == "" {
		return p, fmt.Errorf("%s: empty meeting code: %w", t.Type(), asynq.SkipRetry)
	}
	return p, nil
}

// AsynqEnqueuer puts result tasks on the default queue. Refreshes for one meeting are collapsed while a
// previous one is still pending.
type AsynqEnqueuer struct {
	client *asynq.Client
	unique time.Duration
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client, unique: 30 * time.Second}
}

func (e *AsynqEnqueuer) EnqueueResultRefresh(ctx context.Context, meetingCode string) error {
	t, err := NewResultRefreshTask(meetingCode)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, t, asynq.Queue(constants.QueueDefault), asynq.Unique(e.unique))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func (e *AsynqEnqueuer) EnqueueResultArchive(ctx context.Context, meetingCode string) error {
	t, err := NewResultArchiveTask(meetingCode)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, t, asynq.Queue(constants.QueueDefault))
	return err
}
