package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

var ErrInvalidIntention = fmt.Errorf("intention is not in the reply intention vocabulary")

// replyTransitions maps a closing intention to the status it drives the
// request into.
var replyTransitions = map[schema.ReplyIntention]schema.HelpStatus{
	schema.IntentionFinish: schema.HelpStatusFinished,
	schema.IntentionCancel: schema.HelpStatusCanceled,
}

// ReplyHelp appends a reply to a request. A finish or cancel intention
// also transitions the request out of the active lifecycle; the reply
// and the transition commit together, and a request that is already
// closed rejects the whole write with ErrRequestNotOpen.
func (s *BikeanjoStore) ReplyHelp(authorID, helpID uuid.UUID, message string, intention schema.ReplyIntention) (*schema.HelpReply, error) {
	if intention == "" {
		intention = schema.IntentionAnswer
	}
	if _, ok := schema.ReplyIntentions[intention]; !ok {
		return nil, ErrInvalidIntention
	}

	reply := schema.HelpReply{
		ID:            uuid.New(),
		AuthorID:      authorID,
		HelpRequestID: helpID,
		Message:       message,
		Intention:     intention,
	}

	tx := s.ormDB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&reply).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if status, ok := replyTransitions[intention]; ok {
		result := tx.Model(schema.HelpRequest{}).
			Where("id = ? AND status IN (?)", helpID, schema.ActiveStatuses).
			Update("status", status)
		if result.Error != nil {
			tx.Rollback()
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return nil, ErrRequestNotOpen
		}
	} else {
		// a plain answer still counts as request activity
		if err := tx.Model(schema.HelpRequest{}).
			Where("id = ?", helpID).
			Update("updated_at", time.Now().UTC()).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	return &reply, tx.Commit().Error
}

// ListReplies returns the replies of a request in thread order.
func (s *BikeanjoStore) ListReplies(helpID uuid.UUID) ([]schema.HelpReply, error) {
	replies := []schema.HelpReply{}

	if err := s.ormDB.
		Where("help_request_id = ?", helpID).
		Order("created_at asc").
		Find(&replies).Error; err != nil {
		return nil, err
	}

	return replies, nil
}
