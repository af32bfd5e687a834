package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"time2gather/core/constants"
	"time2gather/core/errors"
	"time2gather/core/logger"
	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/entity"
	"time2gather/modules/meeting/mapper"
)

// UpstreamClient talks to the time2gather REST API. The caller's bearer token is forwarded as-is; an
// empty token sends an anonymous request.
type UpstreamClient interface {
	CreateMeeting(ctx context.Context, token string, req *dto.UpstreamCreateMeetingRequest) (*entity.CreatedMeeting, *errors.AppError)
	GetMeeting(ctx context.Context, token, code string) (*entity.MeetingDetail, *errors.AppError)
	GetMySelections(ctx context.Context, token, code string) (entity.Selection, *errors.AppError)
	PutSelections(ctx context.Context, token, code string, submission entity.Submission) *errors.AppError
	GetLocationSelections(ctx context.Context, token, code string) ([]int64, *errors.AppError)
	PutLocationSelections(ctx context.Context, token, code string, locationIDs []int64) *errors.AppError
	ConfirmMeeting(ctx context.Context, token, code string, req *dto.UpstreamConfirmRequest) *errors.AppError
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewUpstreamClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = constants.UpstreamTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func meetingPath(code string, parts ...string) string {
	p := "/v1/meetings/" + url.PathEscape(code)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (c *HTTPClient) CreateMeeting(ctx context.Context, token string, req *dto.UpstreamCreateMeetingRequest) (*entity.CreatedMeeting, *errors.AppError) {
	var raw dto.UpstreamCreatedMeeting
	if appErr := c.do(ctx, http.MethodPost, "/v1/meetings", token, req, &raw); appErr != nil {
		return nil, appErr
	}
	created, err := mapper.ToCreatedMeeting(&raw)
	if err != nil {
		logger.Error("UpstreamClient:CreateMeeting:Map:Error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamPayload, "invalid create meeting response", err)
	}
	return created, nil
}

func (c *HTTPClient) GetMeeting(ctx context.Context, token, code string) (*entity.MeetingDetail, *errors.AppError) {
	var raw dto.UpstreamMeetingDetail
	if appErr := c.do(ctx, http.MethodGet, meetingPath(code), token, nil, &raw); appErr != nil {
		return nil, appErr
	}
	detail, err := mapper.ToMeetingDetail(&raw)
	if err != nil {
		logger.Error("UpstreamClient:GetMeeting:Map:Error", "code", code, "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamPayload, "invalid meeting response", err)
	}
	return detail, nil
}

func (c *HTTPClient) GetMySelections(ctx context.Context, token, code string) (entity.Selection, *errors.AppError) {
	var raw dto.UpstreamSelections
	if appErr := c.do(ctx, http.MethodGet, meetingPath(code, "selections"), token, nil, &raw); appErr != nil {
		return nil, appErr
	}
	sel, err := mapper.ToSelection(raw.Selections)
	if err != nil {
		logger.Error("UpstreamClient:GetMySelections:Map:Error", "code", code, "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamPayload, "invalid selections response", err)
	}
	return sel, nil
}

func (c *HTTPClient) PutSelections(ctx context.Context, token, code string, submission entity.Submission) *errors.AppError {
	return c.do(ctx, http.MethodPut, meetingPath(code, "selections"), token, submission, nil)
}

func (c *HTTPClient) GetLocationSelections(ctx context.Context, token, code string) ([]int64, *errors.AppError) {
	var raw dto.UpstreamLocationSelections
	if appErr := c.do(ctx, http.MethodGet, meetingPath(code, "location-selections"), token, nil, &raw); appErr != nil {
		return nil, appErr
	}
	if raw.LocationIDs == nil {
		return []int64{}, nil
	}
	return raw.LocationIDs, nil
}

func (c *HTTPClient) PutLocationSelections(ctx context.Context, token, code string, locationIDs []int64) *errors.AppError {
	if locationIDs == nil {
		locationIDs = []int64{}
	}
	body := dto.UpstreamLocationSelections{LocationIDs: locationIDs}
	return c.do(ctx, http.MethodPut, meetingPath(code, "location-selections"), token, body, nil)
}

func (c *HTTPClient) ConfirmMeeting(ctx context.Context, token, code string, req *dto.UpstreamConfirmRequest) *errors.AppError {
	return c.do(ctx, http.MethodPut, meetingPath(code, "confirm"), token, req, nil)
}

// do sends one request and unwraps the {success, data, message} envelope into out.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any, out any) *errors.AppError {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		logger.Error("UpstreamClient:do:NewRequest:Error", "path", path, "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("UpstreamClient:do:DoRequest:Error", "method", method, "path", path, "error", err)
		return errors.NewAppError(errors.ErrUpstream, "upstream request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("UpstreamClient:do:ReadBody:Error", "path", path, "error", err)
		return errors.NewAppError(errors.ErrUpstream, "failed to read upstream response", err)
	}

	var envelope dto.UpstreamEnvelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return statusError(resp.StatusCode, "")
			}
			logger.Error("UpstreamClient:do:Unmarshal:Error", "path", path, "error", err)
			return errors.NewAppError(errors.ErrUpstreamPayload, "invalid upstream response", err)
		}
	} else if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	if resp.StatusCode >= http.StatusBadRequest || !envelope.Success {
		message := envelope.Code
		if envelope.Message != nil && *envelope.Message != "" {
			message = *envelope.Message
		}
		logger.Warn("UpstreamClient:do:Failure", "method", method, "path", path, "status", resp.StatusCode, "message", message)
		if isAlreadyConfirmed(envelope) {
			return errors.NewAppError(errors.ErrMeetingAlreadyConfirmed, "meeting is already confirmed", nil)
		}
		return statusError(resp.StatusCode, message)
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		logger.Error("UpstreamClient:do:UnmarshalData:Error", "path", path, "error", err)
		return errors.NewAppError(errors.ErrUpstreamPayload, "invalid upstream payload", err)
	}
	return nil
}

func isAlreadyConfirmed(envelope dto.UpstreamEnvelope) bool {
	if envelope.Code == constants.UpstreamMeetingAlreadyConfirmed {
		return true
	}
	return envelope.Message != nil && *envelope.Message == constants.UpstreamMeetingAlreadyConfirmed
}

func statusError(status int, message string) *errors.AppError {
	if message == "" {
		message = fmt.Sprintf("upstream responded %d", status)
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.NewAppError(errors.ErrInvalidInput, message, nil)
	case http.StatusUnauthorized:
		return errors.NewAppError(errors.ErrUnauthorized, message, nil)
	case http.StatusForbidden:
		return errors.NewAppError(errors.ErrForbidden, message, nil)
	case http.StatusNotFound:
		return errors.NewAppError(errors.ErrNotFound, message, nil)
	case http.StatusConflict:
		return errors.NewAppError(errors.ErrAlreadyExists, message, nil)
	default:
		return errors.NewAppError(errors.ErrUpstream, message, nil)
	}
}
