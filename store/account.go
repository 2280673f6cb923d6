package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bikeanjo/bikeanjo-api/schema"
)

var (
	ErrInvalidRole       = fmt.Errorf("role is not in the cyclist role vocabulary")
	ErrInvalidGender     = fmt.Errorf("gender is not in the gender vocabulary")
	ErrInvalidExperience = fmt.Errorf("ride experience is not in the experience vocabulary")
	ErrInvalidBikeUse    = fmt.Errorf("bike use is not in the bike use vocabulary")
	ErrInvalidTopicMask  = fmt.Errorf("help topic mask is negative or outside the vocabulary")
)

// UserParams carries the cyclist profile attributes of a user write.
// Empty strings mean the optional field is unset.
type UserParams struct {
	Country        string
	City           string
	Gender         string
	Birthday       time.Time
	RideExperience string
	BikeUse        string
	HelpWith       schema.TopicSet
	Initiatives    string
	Role           string
}

func validateUserParams(params UserParams) error {
	if params.Role != "" && !schema.ValidChoice(schema.CyclistRoles, params.Role) {
		return ErrInvalidRole
	}
	if params.Gender != "" && !schema.ValidChoice(schema.Genders, params.Gender) {
		return ErrInvalidGender
	}
	if params.RideExperience != "" && !schema.ValidChoice(schema.RideExperiences, params.RideExperience) {
		return ErrInvalidExperience
	}
	if params.BikeUse != "" && !schema.ValidChoice(schema.BikeUses, params.BikeUse) {
		return ErrInvalidBikeUse
	}
	if params.HelpWith < 0 || params.HelpWith&^(schema.OfferTopicsMask|schema.RequestTopicsMask) != 0 {
		return ErrInvalidTopicMask
	}
	return nil
}

// CreateUser registers a cyclist into the bikeanjo system. Vocabulary
// violations are rejected before anything is persisted. The birthday
// defaults to the creation day when unset.
func (s *BikeanjoStore) CreateUser(params UserParams) (*schema.User, error) {
	if err := validateUserParams(params); err != nil {
		return nil, err
	}

	if params.Birthday.IsZero() {
		params.Birthday = time.Now().UTC().Truncate(24 * time.Hour)
	}

	u := schema.User{
		ID:             uuid.New(),
		Country:        params.Country,
		City:           params.City,
		Gender:         params.Gender,
		Birthday:       params.Birthday,
		RideExperience: params.RideExperience,
		BikeUse:        params.BikeUse,
		HelpWith:       params.HelpWith,
		Initiatives:    params.Initiatives,
		Role:           params.Role,
	}

	if err := s.ormDB.Create(&u).Error; err != nil {
		return nil, err
	}

	return &u, nil
}

// GetUser returns the user of a given id
func (s *BikeanjoStore) GetUser(id uuid.UUID) (*schema.User, error) {
	var u schema.User
	if err := s.ormDB.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserProfile rewrites the profile attributes of a user
func (s *BikeanjoStore) UpdateUserProfile(id uuid.UUID, params UserParams) error {
	if err := validateUserParams(params); err != nil {
		return err
	}

	var u schema.User
	if err := s.ormDB.Where("id = ?", id).First(&u).Error; err != nil {
		return err
	}

	u.Country = params.Country
	u.City = params.City
	u.Gender = params.Gender
	if !params.Birthday.IsZero() {
		u.Birthday = params.Birthday
	}
	u.RideExperience = params.RideExperience
	u.BikeUse = params.BikeUse
	u.Initiatives = params.Initiatives
	u.Role = params.Role

	return s.ormDB.Save(&u).Error
}

// UpdateUserHelpTopics replaces the user's help-topic interest set
func (s *BikeanjoStore) UpdateUserHelpTopics(id uuid.UUID, topics schema.TopicSet) error {
	if topics < 0 || topics&^(schema.OfferTopicsMask|schema.RequestTopicsMask) != 0 {
		return ErrInvalidTopicMask
	}

	return s.ormDB.Model(schema.User{}).
		Where("id = ?", id).
		Update("help_with", topics).Error
}

// DeleteUser removes a user from our system permanently
func (s *BikeanjoStore) DeleteUser(id uuid.UUID) error {
	return s.ormDB.Delete(schema.User{}, "id = ?", id).Error
}

// FilterVolunteers keeps only the ids that belong to registered
// volunteers, preserving the input order
func (s *BikeanjoStore) FilterVolunteers(ids []string) ([]string, error) {
	volunteers := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return volunteers, nil
	}

	var users []schema.User
	if err := s.ormDB.Select("id").
		Where("id IN (?) AND role = ?", ids, schema.RoleVolunteer).
		Find(&users).Error; err != nil {
		return nil, err
	}

	matched := make(map[string]bool, len(users))
	for _, u := range users {
		matched[u.ID.String()] = true
	}
	for _, id := range ids {
		if matched[id] {
			volunteers = append(volunteers, id)
		}
	}
	return volunteers, nil
}
