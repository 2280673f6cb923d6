package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

var (
	ErrRequestNotOpen      = fmt.Errorf("the request is either closed or not open for you")
	ErrInvalidRequestTopic = fmt.Errorf("requested topics are outside the request vocabulary")
	ErrUnknownRequester    = fmt.Errorf("the requester is not registered")
)

// foreign key violation
const pqErrForeignKey = "23503"

// RequestHelp creates a help entry owned by the requester. New requests
// carry no volunteer and start in the `new` status.
func (s *BikeanjoStore) RequestHelp(requesterID uuid.UUID, topics schema.TopicSet) (*schema.HelpRequest, error) {
	if topics < 0 || topics&^schema.RequestTopicsMask != 0 {
		return nil, ErrInvalidRequestTopic
	}

	// LastAccess and the audit pair start at the same instant, so a
	// fresh request reports no unseen updates. gorm keeps pre-set
	// timestamps on create.
	now := time.Now().UTC()
	help := schema.HelpRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		HelpWith:    topics,
		Status:      schema.HelpStatusNew,
		LastAccess:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ormDB.Create(&help).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqErrForeignKey {
			return nil, ErrUnknownRequester
		}
		return nil, err
	}
	return &help, nil
}

func (s *BikeanjoStore) GetHelp(helpID uuid.UUID) (*schema.HelpRequest, error) {
	var help schema.HelpRequest

	if err := s.ormDB.Preload("Requester").Preload("Volunteer").
		Where("id = ?", helpID).First(&help).Error; err != nil {
		return nil, err
	}

	return &help, nil
}

// ListHelps returns the requests a user owns or volunteers for, newest
// first.
func (s *BikeanjoStore) ListHelps(userID uuid.UUID) ([]schema.HelpRequest, error) {
	helps := []schema.HelpRequest{}

	if err := s.ormDB.
		Where("requester_id = ? OR volunteer_id = ?", userID, userID).
		Order("created_at desc").
		Find(&helps).Error; err != nil {
		return nil, err
	}

	return helps, nil
}

// TouchHelp records the requester's view of a request. Only last_access
// moves; the modification timestamp is left alone so HasUpdates keeps
// comparing against real content changes.
func (s *BikeanjoStore) TouchHelp(helpID, requesterID uuid.UUID) error {
	result := s.ormDB.Model(schema.HelpRequest{}).
		Where("id = ? AND requester_id = ?", helpID, requesterID).
		UpdateColumn("last_access", time.Now().UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRequestNotOpen
	}

	return nil
}

// AssignVolunteer claims a request for a volunteer. The claim succeeds
// only while the request is still `new`, unclaimed, and not owned by the
// claiming user; concurrent claims are serialized by the conditional
// write, the losers get ErrRequestNotOpen.
func (s *BikeanjoStore) AssignVolunteer(volunteerID, helpID uuid.UUID) error {
	result := s.ormDB.Model(schema.HelpRequest{}).
		Where("id = ? AND requester_id != ? AND status = ? AND volunteer_id IS NULL",
			helpID, volunteerID, schema.HelpStatusNew).
		Updates(map[string]interface{}{
			"status":       schema.HelpStatusAssigned,
			"volunteer_id": volunteerID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRequestNotOpen
	}

	return nil
}

func (s *BikeanjoStore) listHelpsWithStatus(statuses ...schema.HelpStatus) ([]schema.HelpRequest, error) {
	helps := []schema.HelpRequest{}

	if err := s.ormDB.
		Where("status IN (?)", statuses).
		Order("created_at desc").
		Find(&helps).Error; err != nil {
		return nil, err
	}

	return helps, nil
}

// ActiveHelps lists requests still waiting for or receiving help.
func (s *BikeanjoStore) ActiveHelps() ([]schema.HelpRequest, error) {
	return s.listHelpsWithStatus(schema.ActiveStatuses...)
}

func (s *BikeanjoStore) NewHelps() ([]schema.HelpRequest, error) {
	return s.listHelpsWithStatus(schema.HelpStatusNew)
}

func (s *BikeanjoStore) AssignedHelps() ([]schema.HelpRequest, error) {
	return s.listHelpsWithStatus(schema.HelpStatusAssigned)
}

// ClosedHelps lists requests that left the active lifecycle.
func (s *BikeanjoStore) ClosedHelps() ([]schema.HelpRequest, error) {
	return s.listHelpsWithStatus(schema.ClosedStatuses...)
}

func (s *BikeanjoStore) CanceledHelps() ([]schema.HelpRequest, error) {
	return s.listHelpsWithStatus(schema.HelpStatusCanceled)
}

func (s *BikeanjoStore) FinishedHelps() ([]schema.HelpRequest, error) {
	return s.listHelpsWithStatus(schema.HelpStatusFinished)
}
