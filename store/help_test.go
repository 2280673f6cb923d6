package store

import (
	"os"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/stretchr/testify/suite"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

// HelpTestSuite runs against a live postgres pointed to by
// BIKEANJO_TEST_ORM_CONN; it is skipped otherwise.
type HelpTestSuite struct {
	suite.Suite
	connURI string
	ormDB   *gorm.DB
	store   *BikeanjoStore
}

func TestHelpTestSuite(t *testing.T) {
	connURI := os.Getenv("BIKEANJO_TEST_ORM_CONN")
	if connURI == "" {
		t.Skip("BIKEANJO_TEST_ORM_CONN not set")
	}
	suite.Run(t, &HelpTestSuite{connURI: connURI})
}

func (s *HelpTestSuite) SetupSuite() {
	ormDB, err := gorm.Open("postgres", s.connURI)
	if err != nil {
		s.T().Fatalf("connect postgres with error: %s", err)
	}
	s.ormDB = ormDB
	s.store = NewBikeanjoStore(ormDB, nil)

	if err := ormDB.AutoMigrate(
		&schema.User{},
		&schema.HelpRequest{},
		&schema.HelpReply{},
	).Error; err != nil {
		s.T().Fatal(err)
	}
}

// SetupTest makes sure every test starts from an empty workflow table
func (s *HelpTestSuite) SetupTest() {
	s.ormDB.Delete(schema.HelpReply{})
	s.ormDB.Delete(schema.HelpRequest{})
	s.ormDB.Delete(schema.User{})
}

func (s *HelpTestSuite) TearDownSuite() {
	if s.ormDB != nil {
		s.ormDB.Close()
	}
}

func (s *HelpTestSuite) mustCreateUser(role string) *schema.User {
	u, err := s.store.CreateUser(UserParams{Role: role})
	s.Require().NoError(err)
	return u
}

func (s *HelpTestSuite) TestRequestHelpDefaults() {
	requester := s.mustCreateUser(schema.RoleRequester)

	help, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicLearnRide))
	s.NoError(err)
	s.Equal(schema.HelpStatusNew, help.Status)
	s.Nil(help.VolunteerID)

	fetched, err := s.store.GetHelp(help.ID)
	s.NoError(err)
	s.False(fetched.HasUpdates(), "freshly created request has no unseen updates")

	active, err := s.store.ActiveHelps()
	s.NoError(err)
	s.Len(active, 1)

	closed, err := s.store.ClosedHelps()
	s.NoError(err)
	s.Len(closed, 0)
}

func (s *HelpTestSuite) TestAssignVolunteer() {
	requester := s.mustCreateUser(schema.RoleRequester)
	volunteer := s.mustCreateUser(schema.RoleVolunteer)

	help, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicPracticeRides))
	s.Require().NoError(err)

	// the requester cannot claim its own request
	s.Equal(ErrRequestNotOpen, s.store.AssignVolunteer(requester.ID, help.ID))

	s.NoError(s.store.AssignVolunteer(volunteer.ID, help.ID))

	fetched, err := s.store.GetHelp(help.ID)
	s.NoError(err)
	s.Equal(schema.HelpStatusAssigned, fetched.Status)
	s.Require().NotNil(fetched.VolunteerID)
	s.Equal(volunteer.ID, *fetched.VolunteerID)

	// a second claim loses the conditional write
	other := s.mustCreateUser(schema.RoleVolunteer)
	s.Equal(ErrRequestNotOpen, s.store.AssignVolunteer(other.ID, help.ID))
}

func (s *HelpTestSuite) TestStatusFilters() {
	requester := s.mustCreateUser(schema.RoleRequester)
	volunteer := s.mustCreateUser(schema.RoleVolunteer)

	newHelp, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicLearnRide))
	s.Require().NoError(err)

	assigned, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicRouteRequest))
	s.Require().NoError(err)
	s.Require().NoError(s.store.AssignVolunteer(volunteer.ID, assigned.ID))

	canceled, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicTrafficEscort))
	s.Require().NoError(err)
	_, err = s.store.ReplyHelp(requester.ID, canceled.ID, "never mind", schema.IntentionCancel)
	s.Require().NoError(err)

	finished, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicPracticeRides))
	s.Require().NoError(err)
	s.Require().NoError(s.store.AssignVolunteer(volunteer.ID, finished.ID))
	_, err = s.store.ReplyHelp(volunteer.ID, finished.ID, "done", schema.IntentionFinish)
	s.Require().NoError(err)

	active, err := s.store.ActiveHelps()
	s.NoError(err)
	s.Len(active, 2)

	closed, err := s.store.ClosedHelps()
	s.NoError(err)
	s.Len(closed, 2)

	news, err := s.store.NewHelps()
	s.NoError(err)
	s.Require().Len(news, 1)
	s.Equal(newHelp.ID, news[0].ID)

	cancels, err := s.store.CanceledHelps()
	s.NoError(err)
	s.Require().Len(cancels, 1)
	s.Equal(canceled.ID, cancels[0].ID)

	finishes, err := s.store.FinishedHelps()
	s.NoError(err)
	s.Require().Len(finishes, 1)
	s.Equal(finished.ID, finishes[0].ID)

	// active and closed never overlap
	closedIDs := map[string]bool{}
	for _, h := range closed {
		closedIDs[h.ID.String()] = true
	}
	for _, h := range active {
		s.False(closedIDs[h.ID.String()])
	}
}

func (s *HelpTestSuite) TestReplyDrivesUpdates() {
	requester := s.mustCreateUser(schema.RoleRequester)
	volunteer := s.mustCreateUser(schema.RoleVolunteer)

	help, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicLearnRide))
	s.Require().NoError(err)
	s.Require().NoError(s.store.AssignVolunteer(volunteer.ID, help.ID))

	_, err = s.store.ReplyHelp(volunteer.ID, help.ID, "when works for you?", schema.IntentionAnswer)
	s.Require().NoError(err)

	fetched, err := s.store.GetHelp(help.ID)
	s.NoError(err)
	s.True(fetched.HasUpdates(), "the volunteer's activity is unseen by the requester")

	s.NoError(s.store.TouchHelp(help.ID, requester.ID))
	fetched, err = s.store.GetHelp(help.ID)
	s.NoError(err)
	s.False(fetched.HasUpdates())

	replies, err := s.store.ListReplies(help.ID)
	s.NoError(err)
	s.Require().Len(replies, 1)
	s.Equal(schema.IntentionAnswer, replies[0].Intention)
}

func (s *HelpTestSuite) TestReplyOnClosedRequest() {
	requester := s.mustCreateUser(schema.RoleRequester)

	help, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicLearnRide))
	s.Require().NoError(err)

	_, err = s.store.ReplyHelp(requester.ID, help.ID, "never mind", schema.IntentionCancel)
	s.Require().NoError(err)

	// the closing transition cannot be applied twice
	_, err = s.store.ReplyHelp(requester.ID, help.ID, "again", schema.IntentionCancel)
	s.Equal(ErrRequestNotOpen, err)

	replies, err := s.store.ListReplies(help.ID)
	s.NoError(err)
	s.Len(replies, 1, "the rejected reply is rolled back with its transition")
}

func (s *HelpTestSuite) TestListHelps() {
	requester := s.mustCreateUser(schema.RoleRequester)
	volunteer := s.mustCreateUser(schema.RoleVolunteer)
	bystander := s.mustCreateUser(schema.RoleVolunteer)

	help, err := s.store.RequestHelp(requester.ID, schema.NewTopicSet(schema.TopicLearnRide))
	s.Require().NoError(err)
	s.Require().NoError(s.store.AssignVolunteer(volunteer.ID, help.ID))

	mine, err := s.store.ListHelps(requester.ID)
	s.NoError(err)
	s.Len(mine, 1)

	volunteered, err := s.store.ListHelps(volunteer.ID)
	s.NoError(err)
	s.Len(volunteered, 1)

	none, err := s.store.ListHelps(bystander.ID)
	s.NoError(err)
	s.Len(none, 0)
}
