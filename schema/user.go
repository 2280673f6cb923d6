package schema

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleVolunteer = "volunteer"
	RoleRequester = "requester"
)

// User extends the base account record with cyclist profile attributes.
// Identity and authentication fields live in the account system and are
// out of scope here.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Country        string    `json:"country" gorm:"size:32"`
	City           string    `json:"city" gorm:"size:32"`
	Gender         string    `json:"gender" gorm:"size:24"`
	Birthday       time.Time `json:"birthday"`
	RideExperience string    `json:"ride_experience" gorm:"size:32"`
	BikeUse        string    `json:"bike_use" gorm:"size:32"`
	HelpWith       TopicSet  `json:"help_with" gorm:"type:bigint;default:0"`
	Initiatives    string    `json:"initiatives" gorm:"size:256"`
	Role           string    `json:"role" gorm:"size:32"`
	CreatedAt      time.Time `json:"created_date"`
	UpdatedAt      time.Time `json:"modified_date"`
}

// HelpLabels decodes the user's help-topic mask into labels, in
// vocabulary order.
func (u User) HelpLabels() []string {
	return u.HelpWith.Labels()
}
