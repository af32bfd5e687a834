package dto

import "encoding/json"

// Wire shapes of the upstream time2gather API. They are loosely typed on purpose and only ever reach
// the rest of the module through the mapper.

type UpstreamEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Code    string          `json:"code,omitempty"`
}

type UpstreamCreateMeetingRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Timezone       string              `json:"timezone"`
	AvailableDates map[string][]string `json:"availableDates"`
}

type UpstreamCreatedMeeting struct {
	ID          int64  `json:"id"`
	MeetingCode string `json:"meetingCode"`
	URL         string `json:"url"`
}

type UpstreamUser struct {
	UserID          int64   `json:"userId"`
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type UpstreamMeeting struct {
	ID             int64               `json:"id"`
	Code           string              `json:"code"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Host           UpstreamUser        `json:"host"`
	Timezone       string              `json:"timezone"`
	AvailableDates map[string][]string `json:"availableDates"`
	ConfirmedDate  *string             `json:"confirmedDate"`
	ConfirmedSlot  *int                `json:"confirmedSlotIndex"`
}

// UpstreamBestSlot keeps percentage raw: some endpoints send 80, others "80%".
type UpstreamBestSlot struct {
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Count      int             `json:"count"`
	Percentage json.RawMessage `json:"percentage"`
}

type UpstreamSummary struct {
	TotalParticipants int                `json:"totalParticipants"`
	BestSlots         []UpstreamBestSlot `json:"bestSlots"`
}

type UpstreamLocation struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	DisplayOrder int             `json:"displayOrder"`
	VoteCount    int             `json:"voteCount"`
	Percentage   json.RawMessage `json:"percentage"`
	Voters       []UpstreamUser  `json:"voters"`
}

// UpstreamMeetingDetail is GET /v1/meetings/{code}. Schedule cells arrive either as a bare participant
// list or as {count, participants}.
type UpstreamMeetingDetail struct {
	Meeting           UpstreamMeeting                       `json:"meeting"`
	Participants      []UpstreamUser                        `json:"participants"`
	Schedule          map[string]map[string]json.RawMessage `json:"schedule"`
	Summary           UpstreamSummary                       `json:"summary"`
	Locations         []UpstreamLocation                    `json:"locations"`
	ConfirmedLocation *UpstreamLocation                     `json:"confirmedLocation"`
}

type UpstreamScheduleSlot struct {
	Count        *int           `json:"count"`
	Participants []UpstreamUser `json:"participants"`
}

type UpstreamSelections struct {
	Selections map[string][]string `json:"selections"`
}

type UpstreamLocationSelections struct {
	LocationIDs []int64 `json:"locationIds"`
}

// UpstreamConfirmRequest sends a nil SlotIndex for all-day meetings.
type UpstreamConfirmRequest struct {
	Date      string `json:"date"`
	SlotIndex *int   `json:"slotIndex"`
}
