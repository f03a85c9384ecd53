package types

import "github.com/google/uuid"

// ProfileItem pairs a section item id with its decoded payload. Only items
// with includeInResume set reach a ResumeProfile, already in the user's
// chosen order.
type ProfileItem[T any] struct {
	ID      uuid.UUID `json:"id"`
	Payload T         `json:"payload"`
}

// ResumeProfile is the read-time aggregate of one user's included, ordered
// resume sections. It is the input contract for the rendering collaborator:
// no excluded items appear, and per-section ordering is exactly as configured.
type ResumeProfile struct {
	UserID         uuid.UUID                    `json:"user_id"`
	Contact        *Contact                     `json:"contact,omitempty"`
	Summary        *Summary                     `json:"summary,omitempty"`
	Education      []ProfileItem[Education]     `json:"education"`
	Experience     []ProfileItem[Experience]    `json:"experience"`
	Skills         []ProfileItem[Skill]         `json:"skills"`
	Projects       []ProfileItem[Project]       `json:"projects"`
	Certifications []ProfileItem[Certification] `json:"certifications"`
	Involvements   []ProfileItem[Involvement]   `json:"involvements"`
}

// IsEmpty reports whether no section contributed any content.
func (p *ResumeProfile) IsEmpty() bool {
	return p.Contact == nil && p.Summary == nil &&
		len(p.Education) == 0 && len(p.Experience) == 0 &&
		len(p.Skills) == 0 && len(p.Projects) == 0 &&
		len(p.Certifications) == 0 && len(p.Involvements) == 0
}
