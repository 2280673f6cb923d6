package schema

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Choice is one entry of an ordered vocabulary: a stable stored code and
// its English label. Labels are presentation-only and localizable; codes
// are what the database keeps.
type Choice struct {
	Code  string
	Label string
}

var Genders = []Choice{
	{"male", "Male"},
	{"female", "Female"},
}

var CyclistRoles = []Choice{
	{"volunteer", "Volunteer"},
	{"requester", "Requester"},
}

var VolunteerExperiences = []Choice{
	{"less than 1 year", "Less than 1 year"},
	{"from 1 to 2 years", "From 1 to 2 years"},
	{"from 2 to 4 years", "From 2 to 4 years"},
	{"more than 4 years", "More than 4 years"},
}

var RequesterExperiences = []Choice{
	{"do not know pedaling yet", "I do not know pedaling yet"},
	{"no experience in traffic", "I know cycling, but have no experience in traffic"},
	{"already ride a long time", "Already ride a long time but not daily"},
	{"use bike almost every day", "I use bike almost every day"},
}

// RideExperiences is volunteer-flavored entries followed by
// requester-flavored ones, in declared order.
var RideExperiences = append(append([]Choice{}, VolunteerExperiences...), RequesterExperiences...)

var BikeUses = []Choice{
	{"everyday", "Everyday"},
	{"just few days a week/month", "Just few days a week/month"},
	{"once a week", "Once a week"},
	{"no, i use for leisure", "No, I use for leisure"},
}

// HelpTopic is one help-topic flag. Codes are powers of two so a
// subject's interest set is a plain integer bitmask.
type HelpTopic int64

const (
	TopicTeachRide     HelpTopic = 1
	TopicFollowRides   HelpTopic = 2
	TopicRouteAdvice   HelpTopic = 4
	TopicEvents        HelpTopic = 8
	TopicLearnRide     HelpTopic = 16
	TopicPracticeRides HelpTopic = 32
	TopicTrafficEscort HelpTopic = 64
	TopicRouteRequest  HelpTopic = 128
)

// TopicChoice maps a help-topic code to its label.
type TopicChoice struct {
	Code  HelpTopic
	Label string
}

// OfferTopics are the topics a volunteer offers help with.
var OfferTopics = []TopicChoice{
	{TopicTeachRide, "Teach someone to ride a bike"},
	{TopicFollowRides, "Follow beginners on cycling"},
	{TopicRouteAdvice, "Advice about safe routes"},
	{TopicEvents, "Participating in the events of Bike Anjos"},
}

// RequestTopics are the topics a requester asks help for.
var RequestTopics = []TopicChoice{
	{TopicLearnRide, "Learn to ride a bike"},
	{TopicPracticeRides, "Pratice cycling"},
	{TopicTrafficEscort, "Monitoring on traffic"},
	{TopicRouteRequest, "Route recomendation"},
}

// HelpTopics is offers then requests, preserving declaration order.
// Consumers iterate it in this fixed order.
var HelpTopics = append(append([]TopicChoice{}, OfferTopics...), RequestTopics...)

// OfferTopicsMask and RequestTopicsMask are the unions of the two halves
// of the vocabulary.
var (
	OfferTopicsMask   = topicsMask(OfferTopics)
	RequestTopicsMask = topicsMask(RequestTopics)
)

func topicsMask(topics []TopicChoice) TopicSet {
	var mask TopicSet
	for _, t := range topics {
		mask |= TopicSet(t.Code)
	}
	return mask
}

var ErrNegativeTopicMask = errors.New("help topic mask must be non-negative")

// TopicSet is a set of help topics backed by the vocabulary bitmask. It
// is persisted as a plain integer column and is never negative.
type TopicSet int64

func NewTopicSet(topics ...HelpTopic) TopicSet {
	var s TopicSet
	for _, t := range topics {
		s |= TopicSet(t)
	}
	return s
}

func (s TopicSet) Contains(t HelpTopic) bool {
	return s&TopicSet(t) != 0
}

func (s TopicSet) Add(t HelpTopic) TopicSet {
	return s | TopicSet(t)
}

// Topics returns the set members in vocabulary order.
func (s TopicSet) Topics() []HelpTopic {
	topics := make([]HelpTopic, 0)
	for _, t := range HelpTopics {
		if TopicSet(t.Code) > s {
			break
		}
		if s.Contains(t.Code) {
			topics = append(topics, t.Code)
		}
	}
	return topics
}

// Labels decodes the set into its topic labels, in vocabulary order.
// Codes are ascending powers of two, so once a code exceeds the mask no
// later bit can be set and iteration stops.
func (s TopicSet) Labels() []string {
	labels := make([]string, 0)
	for _, t := range HelpTopics {
		if TopicSet(t.Code) > s {
			break
		}
		if s.Contains(t.Code) {
			labels = append(labels, t.Label)
		}
	}
	return labels
}

func (s TopicSet) Value() (driver.Value, error) {
	if s < 0 {
		return nil, ErrNegativeTopicMask
	}
	return int64(s), nil
}

func (s *TopicSet) Scan(src interface{}) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("unsupported topic mask type: %T", src)
	}
	if v < 0 {
		return ErrNegativeTopicMask
	}
	*s = TopicSet(v)
	return nil
}

// ValidChoice reports whether code belongs to the given vocabulary.
func ValidChoice(choices []Choice, code string) bool {
	for _, c := range choices {
		if c.Code == code {
			return true
		}
	}
	return false
}
