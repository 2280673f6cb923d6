package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

// validation rejections happen before any write, so a store without
// connections is enough here

func TestCreateUserRejectsBadVocabulary(t *testing.T) {
	s := NewBikeanjoStore(nil, nil)

	_, err := s.CreateUser(UserParams{Role: "admin"})
	assert.Equal(t, ErrInvalidRole, err)

	_, err = s.CreateUser(UserParams{Gender: "other"})
	assert.Equal(t, ErrInvalidGender, err)

	_, err = s.CreateUser(UserParams{RideExperience: "forever"})
	assert.Equal(t, ErrInvalidExperience, err)

	_, err = s.CreateUser(UserParams{BikeUse: "sometimes"})
	assert.Equal(t, ErrInvalidBikeUse, err)

	_, err = s.CreateUser(UserParams{HelpWith: schema.TopicSet(-1)})
	assert.Equal(t, ErrInvalidTopicMask, err)

	_, err = s.CreateUser(UserParams{HelpWith: schema.TopicSet(256)})
	assert.Equal(t, ErrInvalidTopicMask, err, "bits outside the topic vocabulary")
}

func TestRequestHelpRejectsOfferTopics(t *testing.T) {
	s := NewBikeanjoStore(nil, nil)

	_, err := s.RequestHelp(uuid.New(), schema.NewTopicSet(schema.TopicTeachRide))
	assert.Equal(t, ErrInvalidRequestTopic, err)

	_, err = s.RequestHelp(uuid.New(), schema.TopicSet(-4))
	assert.Equal(t, ErrInvalidRequestTopic, err)
}

func TestReplyHelpRejectsUnknownIntention(t *testing.T) {
	s := NewBikeanjoStore(nil, nil)

	_, err := s.ReplyHelp(uuid.New(), uuid.New(), "hi", schema.ReplyIntention("resolve"))
	assert.Equal(t, ErrInvalidIntention, err)
}

func TestUpdateUserHelpTopicsRejectsBadMask(t *testing.T) {
	s := NewBikeanjoStore(nil, nil)

	assert.Equal(t, ErrInvalidTopicMask, s.UpdateUserHelpTopics(uuid.New(), schema.TopicSet(-1)))
	assert.Equal(t, ErrInvalidTopicMask, s.UpdateUserHelpTopics(uuid.New(), schema.TopicSet(512)))
}

func TestAddTrackRequiresTwoCoordinates(t *testing.T) {
	m := &mongoDB{}

	_, err := m.AddTrack("user", "a", "b", [][]float64{{-46.6, -23.5}})
	assert.Equal(t, ErrEmptyTrack, err)
}
