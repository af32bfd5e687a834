package entity

import "time"

type Host struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type Meeting struct {
	ID             int64          `json:"id"`
	Code           string         `json:"code"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Host           Host           `json:"host"`
	Timezone       string         `json:"timezone"`
	AvailableDates AvailableDates `json:"availableDates"`
	Confirmed      *ConfirmedSlot `json:"confirmed,omitempty"`
}

// ConfirmedSlot is the slot the host locked in. Time is AllDay for all-day meetings.
type ConfirmedSlot struct {
	Date DateKey  `json:"date"`
	Time TimeSlot `json:"time"`
}

type Location struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	DisplayOrder int           `json:"displayOrder"`
	VoteCount    int           `json:"voteCount"`
	Percentage   string        `json:"percentage"`
	Voters       []Participant `json:"voters"`
}

type Summary struct {
	TotalParticipants int        `json:"totalParticipants"`
	BestSlots         []BestSlot `json:"bestSlots"`
}

// MeetingDetail is the validated form of the upstream meeting payload.
type MeetingDetail struct {
	Meeting           Meeting       `json:"meeting"`
	Participants      []Participant `json:"participants"`
	Schedule          Schedule      `json:"schedule"`
	Summary           Summary       `json:"summary"`
	Locations         []Location    `json:"locations,omitempty"`
	ConfirmedLocation *Location     `json:"confirmedLocation,omitempty"`
}

// CreatedMeeting is what the upstream returns after a meeting is created.
type CreatedMeeting struct {
	ID          int64  `json:"id"`
	MeetingCode string `json:"meetingCode"`
	URL         string `json:"url"`
}

// ResultRange is one merged best-slot range with the participants available inside it.
type ResultRange struct {
	TimeRange
	Label        string        `json:"label"`
	Participants []Participant `json:"participants"`
}

type ResultGroup struct {
	Date      DateKey       `json:"date"`
	DateLabel string        `json:"dateLabel"`
	Ranges    []ResultRange `json:"ranges"`
}

// HeatCell is one cell of the heat-mapped results grid.
type HeatCell struct {
	Date  DateKey  `json:"date"`
	Time  TimeSlot `json:"time"`
	Count int      `json:"count"`
	Level int      `json:"level"`
}

// MeetingResult is the read-only results view. It is cached and archived as-is.
type MeetingResult struct {
	Code              string         `json:"code"`
	Title             string         `json:"title"`
	Timezone          string         `json:"timezone"`
	SelectionType     SelectionType  `json:"selectionType"`
	Locale            string         `json:"locale"`
	TotalParticipants int            `json:"totalParticipants"`
	Participants      []Participant  `json:"participants"`
	Groups            []ResultGroup  `json:"groups"`
	TopSlots          []BestSlot     `json:"topSlots"`
	Grid              []HeatCell     `json:"grid"`
	Locations         []Location     `json:"locations,omitempty"`
	Confirmed         *ConfirmedSlot `json:"confirmed,omitempty"`
	GeneratedAt       time.Time      `json:"generatedAt"`
}
