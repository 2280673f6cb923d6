package schema

import (
	"time"

	"github.com/google/uuid"
)

// HelpStatus is one stage of a help request lifecycle:
// new → assigned → canceled|finished.
type HelpStatus string

const (
	HelpStatusNew      HelpStatus = "new"
	HelpStatusAssigned HelpStatus = "assigned"
	HelpStatusCanceled HelpStatus = "canceled"
	HelpStatusFinished HelpStatus = "finished"
)

// HelpStatusLabels maps every status to its label.
var HelpStatusLabels = map[HelpStatus]string{
	HelpStatusNew:      "New",
	HelpStatusAssigned: "Assigned",
	HelpStatusCanceled: "Canceled",
	HelpStatusFinished: "Finished",
}

// ActiveStatuses and ClosedStatuses partition the status space. A
// request is active until a finish or cancel transition closes it.
var (
	ActiveStatuses = []HelpStatus{HelpStatusNew, HelpStatusAssigned}
	ClosedStatuses = []HelpStatus{HelpStatusCanceled, HelpStatusFinished}
)

// HelpRequest is the matching record between a requester and an assigned
// volunteer. Volunteer stays null while the status is `new`; the
// assignment write sets both together.
type HelpRequest struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	RequesterID uuid.UUID  `json:"requester_id" gorm:"type:uuid;not null;index"`
	Requester   *User      `json:"requester,omitempty" gorm:"foreignkey:RequesterID"`
	VolunteerID *uuid.UUID `json:"volunteer_id" gorm:"type:uuid;index"`
	Volunteer   *User      `json:"volunteer,omitempty" gorm:"foreignkey:VolunteerID"`
	HelpWith    TopicSet   `json:"help_with" gorm:"type:bigint;default:0"`
	Status      HelpStatus `json:"status" gorm:"size:16;default:'new';index"`
	LastAccess  time.Time  `json:"last_access"`
	CreatedAt   time.Time  `json:"created_date"`
	UpdatedAt   time.Time  `json:"modified_date"`
}

// HasUpdates reports whether the record changed since the requester last
// looked at it. LastAccess is stamped by the requester's views only and
// is independent of UpdatedAt.
func (r HelpRequest) HasUpdates() bool {
	return r.LastAccess.Before(r.UpdatedAt)
}

// HelpLabel returns the label of a single-topic request mask, or the
// empty string when the mask is not exactly one request topic.
func (r HelpRequest) HelpLabel() string {
	for _, t := range RequestTopics {
		if TopicSet(t.Code) == r.HelpWith {
			return t.Label
		}
	}
	return ""
}

// HelpLabels decodes the request's topic mask into labels.
func (r HelpRequest) HelpLabels() []string {
	return r.HelpWith.Labels()
}

// ReplyIntention tags what a reply means to the request workflow: a
// plain answer, or a finish/cancel signal that closes the request.
type ReplyIntention string

const (
	IntentionAnswer ReplyIntention = "answer"
	IntentionFinish ReplyIntention = "finish"
	IntentionCancel ReplyIntention = "cancel"
)

// ReplyIntentions maps every intention to its label.
var ReplyIntentions = map[ReplyIntention]string{
	IntentionAnswer: "Answer",
	IntentionFinish: "Finish",
	IntentionCancel: "Cancel",
}

// HelpReply is a threaded message against a help request.
type HelpReply struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	AuthorID      uuid.UUID      `json:"author_id" gorm:"type:uuid;not null"`
	Author        *User          `json:"author,omitempty" gorm:"foreignkey:AuthorID"`
	HelpRequestID uuid.UUID      `json:"helprequest_id" gorm:"type:uuid;not null;index"`
	Message       string         `json:"message" gorm:"type:text"`
	Intention     ReplyIntention `json:"intention" gorm:"size:16;default:'answer'"`
	CreatedAt     time.Time      `json:"created_date"`
	UpdatedAt     time.Time      `json:"modified_date"`
}
