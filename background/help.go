package background

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bikeanjo/bikeanjo-api/consts"
)

const (
	BROADCAST_NEW_HELP   = "09a6b1b2-6e00-4a8f-a306-1a8499c3a571"
	NOTIFY_HELP_ASSIGNED = "5b6e8c42-75cd-47d4-9857-81d6ef2a46bb"
	NOTIFY_HELP_CLOSED   = "e3dbfb15-4c6d-4f6b-9f91-2f5a0cbb0a2d"
)

// BroadcastNewHelp is a background job to notify volunteers registered
// around the requester's points that a new help request is waiting
func (m *BackgroundManager) BroadcastNewHelp(helpID string) error {
	id, err := uuid.Parse(helpID)
	if err != nil {
		return err
	}

	help, err := m.store.GetHelp(id)
	if err != nil {
		return err
	}

	points, err := m.mongo.ListPoints(help.RequesterID.String())
	if err != nil {
		return err
	}

	seen := map[string]bool{help.RequesterID.String(): true}
	userIDs := make([]string, 0)
	for _, p := range points {
		nearby, err := m.mongo.NearestPoints(consts.NEARBY_DISTANCE_RANGE, p.Location())
		if err != nil {
			return err
		}
		for _, u := range nearby {
			if seen[u] {
				continue
			}
			seen[u] = true
			userIDs = append(userIDs, u)
			if len(userIDs) >= consts.NEARBY_VOLUNTEER_LIMIT {
				break
			}
		}
	}

	// point owners include requesters riding the same area; only
	// registered volunteers get the broadcast
	volunteers, err := m.store.FilterVolunteers(userIDs)
	if err != nil {
		return err
	}

	if len(volunteers) == 0 {
		log.WithField("prefix", "background").
			Infof("no volunteer around the points of request %s", helpID)
		return nil
	}

	return m.notification.NotifyUsersByTemplate(volunteers, BROADCAST_NEW_HELP, map[string]interface{}{
		"notification_type": "BROADCAST_NEW_HELP",
		"help_id":           helpID,
	})
}

// NotifyHelpAssigned is a background job to tell a requester that a
// volunteer claimed the request
func (m *BackgroundManager) NotifyHelpAssigned(helpID string, requesterID string) error {
	return m.notification.NotifyUsersByTemplate([]string{requesterID}, NOTIFY_HELP_ASSIGNED, map[string]interface{}{
		"notification_type": "NOTIFY_HELP_ASSIGNED",
		"help_id":           helpID,
	})
}

// NotifyHelpClosed is a background job to tell the counterpart of a
// request that a finish or cancel reply closed it
func (m *BackgroundManager) NotifyHelpClosed(helpID string, userID string, status string) error {
	return m.notification.NotifyUsersByTemplate([]string{userID}, NOTIFY_HELP_CLOSED, map[string]interface{}{
		"notification_type": "NOTIFY_HELP_CLOSED",
		"help_id":           helpID,
		"status":            status,
	})
}

// NotifyHelpUpdated is a background job to send a localized digest of a
// request's topics to its requester
func (m *BackgroundManager) NotifyHelpUpdated(helpID string, lang string) error {
	id, err := uuid.Parse(helpID)
	if err != nil {
		return err
	}

	help, err := m.store.GetHelp(id)
	if err != nil {
		return err
	}

	return m.notification.NotifyUserByText(
		help.RequesterID.String(),
		map[string]string{"en": "Your help request has updates"},
		map[string]string{"en": CommaSeparatedTopics(lang, help.HelpWith)},
		map[string]interface{}{
			"notification_type": "NOTIFY_HELP_UPDATED",
			"help_id":           helpID,
		})
}
