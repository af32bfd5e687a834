package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"time2gather/core/errors"
	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/entity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewUpstreamClient(srv.URL+"/", 2*time.Second)
}

func TestGetMeeting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/meetings/mtg_1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected forwarded token, got %q", got)
		}
		_, _ = io.WriteString(w, `{"success": true, "message": null, "data": {
			"meeting": {"code": "mtg_1", "title": "Lunch", "availableDates": {"2024-02-15": ["09:00"]}},
			"summary": {"totalParticipants": 1, "bestSlots": [{"date": "2024-02-15", "time": "09:00", "count": 1, "percentage": 100}]}
		}}`)
	})

	detail, appErr := c.GetMeeting(context.Background(), "tok", "mtg_1")
	if appErr != nil {
		t.Fatalf("GetMeeting: %v", appErr)
	}
	if detail.Meeting.Title != "Lunch" || detail.Summary.BestSlots[0].Percentage != "100%" {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestGetMeeting_InvalidPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success": true, "data": {"meeting": {"code": "x", "availableDates": {"bad": ["09:00"]}}}}`)
	})
	_, appErr := c.GetMeeting(context.Background(), "", "x")
	if appErr == nil || appErr.Code != errors.ErrUpstreamPayload {
		t.Fatalf("expected payload error, got %v", appErr)
	}
}

func TestPutSelections_Body(t *testing.T) {
	var got entity.Submission
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/v1/meetings/mtg_1/selections" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"success": true, "data": null, "message": null}`)
	})

	sub := entity.Submission{Selections: []entity.SubmissionEntry{
		{Date: "2024-02-15", Type: entity.SelectionTypeTime, Times: []entity.TimeSlot{"09:00"}},
	}}
	if appErr := c.PutSelections(context.Background(), "tok", "mtg_1", sub); appErr != nil {
		t.Fatalf("PutSelections: %v", appErr)
	}
	if len(got.Selections) != 1 || got.Selections[0].Times[0] != "09:00" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestAlreadyConfirmed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success": false, "data": null, "message": "error.meeting.already.confirmed"}`)
	})
	appErr := c.PutSelections(context.Background(), "tok", "mtg_1", entity.Submission{})
	if appErr == nil || appErr.Code != errors.ErrMeetingAlreadyConfirmed {
		t.Fatalf("expected already-confirmed error, got %v", appErr)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   errors.ErrorCode
	}{
		{http.StatusNotFound, `{"success": false, "message": "not found"}`, errors.ErrNotFound},
		{http.StatusUnauthorized, ``, errors.ErrUnauthorized},
		{http.StatusBadGateway, `<html>oops</html>`, errors.ErrUpstream},
		{http.StatusOK, `{"success": false, "message": "nope"}`, errors.ErrUpstream},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = io.WriteString(w, tc.body)
		})
		appErr := c.ConfirmMeeting(context.Background(), "tok", "mtg_1", &dto.UpstreamConfirmRequest{Date: "2024-02-15"})
		if appErr == nil || appErr.Code != tc.want {
			t.Fatalf("status %d: expected %s, got %v", tc.status, tc.want, appErr)
		}
	}
}

func TestConfirmMeeting_NullSlotIndex(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"success": true, "data": null}`)
	})
	if appErr := c.ConfirmMeeting(context.Background(), "tok", "mtg_1", &dto.UpstreamConfirmRequest{Date: "2024-02-15"}); appErr != nil {
		t.Fatalf("ConfirmMeeting: %v", appErr)
	}
	v, ok := body["slotIndex"]
	if !ok || v != nil {
		t.Fatalf("expected explicit null slotIndex, got %v", body)
	}
}

func TestLocationSelections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/meetings/mtg_1/location-selections" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"success": true, "data": {"locationIds": [3, 1]}}`)
			return
		}
		var body dto.UpstreamLocationSelections
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.LocationIDs == nil {
			t.Errorf("expected non-nil location ids")
		}
		_, _ = io.WriteString(w, `{"success": true, "data": null}`)
	})

	ids, appErr := c.GetLocationSelections(context.Background(), "tok", "mtg_1")
	if appErr != nil || len(ids) != 2 {
		t.Fatalf("GetLocationSelections: %v %v", ids, appErr)
	}
	if appErr := c.PutLocationSelections(context.Background(), "tok", "mtg_1", nil); appErr != nil {
		t.Fatalf("PutLocationSelections: %v", appErr)
	}
}
