package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

// bikeanjo main datastore
type BikeanjoCore interface {
	Ping() error

	// User
	CreateUser(params UserParams) (*schema.User, error)
	GetUser(id uuid.UUID) (*schema.User, error)
	UpdateUserProfile(id uuid.UUID, params UserParams) error
	UpdateUserHelpTopics(id uuid.UUID, topics schema.TopicSet) error
	DeleteUser(id uuid.UUID) error
	FilterVolunteers(ids []string) ([]string, error)

	// Help
	RequestHelp(requesterID uuid.UUID, topics schema.TopicSet) (*schema.HelpRequest, error)
	GetHelp(helpID uuid.UUID) (*schema.HelpRequest, error)
	ListHelps(userID uuid.UUID) ([]schema.HelpRequest, error)
	TouchHelp(helpID, requesterID uuid.UUID) error
	AssignVolunteer(volunteerID, helpID uuid.UUID) error

	// Help status filters
	ActiveHelps() ([]schema.HelpRequest, error)
	NewHelps() ([]schema.HelpRequest, error)
	AssignedHelps() ([]schema.HelpRequest, error)
	ClosedHelps() ([]schema.HelpRequest, error)
	CanceledHelps() ([]schema.HelpRequest, error)
	FinishedHelps() ([]schema.HelpRequest, error)

	// Reply workflow
	ReplyHelp(authorID, helpID uuid.UUID, message string, intention schema.ReplyIntention) (*schema.HelpReply, error)
	ListReplies(helpID uuid.UUID) ([]schema.HelpReply, error)
}

// BikeanjoStore is an implementation of BikeanjoCore backed by the
// relational store for workflow records and mongo for geospatial ones.
type BikeanjoStore struct {
	ormDB *gorm.DB
	mongo MongoStore
}

func NewBikeanjoStore(ormDB *gorm.DB, mongo MongoStore) *BikeanjoStore {
	return &BikeanjoStore{
		ormDB: ormDB,
		mongo: mongo,
	}
}

// Ping is to check the storage health status
func (s *BikeanjoStore) Ping() error {
	return s.ormDB.DB().Ping()
}
