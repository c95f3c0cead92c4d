package entity

import "time"

// Expertise qualifies a skill with a level.
type Expertise struct {
	ExpertiseID string `json:"expertise_id"`
	LevelName   string `json:"level_name"`
}

// Skill is an embedded element of a profile's skill set. Name is unique
// within one profile.
type Skill struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Expertise   Expertise `json:"expertise"`
}

// Profile is the user-facing account record. AccountID references a
// Credential; the link is enforced by the account service, not the store.
// Deleted profiles stay in storage but are excluded from every read path.
type Profile struct {
	AccountID string
	Name      string
	AvatarURL string
	Skills    []Skill
	JobRole   string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSkill reports whether the profile already carries a skill with the name.
func (p *Profile) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s.Name == name {
			return true
		}
	}
	return false
}
