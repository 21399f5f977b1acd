package profiles

import "time"

// EducationLevel is an ordinal education attainment level.
type EducationLevel string

const (
	EducationNone     EducationLevel = "none"
	EducationStudent  EducationLevel = "student"
	EducationGraduate EducationLevel = "graduate"
	EducationPhD      EducationLevel = "phd"
)

// EducationRank maps levels to an ordinal scale for preference comparison.
func EducationRank(level EducationLevel) int {
	switch level {
	case EducationStudent:
		return 1
	case EducationGraduate:
		return 2
	case EducationPhD:
		return 3
	default:
		return 0
	}
}

// ValidEducationLevel reports whether the value is a known level.
func ValidEducationLevel(level EducationLevel) bool {
	switch level {
	case EducationNone, EducationStudent, EducationGraduate, EducationPhD:
		return true
	default:
		return false
	}
}

// Availability describes when and how a candidate can work.
type Availability string

const (
	AvailabilityOpen      Availability = "open"
	AvailabilityFullTime  Availability = "full_time"
	AvailabilityPartTime  Availability = "part_time"
	AvailabilityContract  Availability = "contract"
	AvailabilityFreelance Availability = "freelance"
)

// RoleType describes the engagement a job offers.
type RoleType string

const (
	RoleFullTime  RoleType = "full_time"
	RolePartTime  RoleType = "part_time"
	RoleContract  RoleType = "contract"
	RoleFreelance RoleType = "freelance"
)

// Candidate is a talent profile. The match engine and analysis pipeline read
// candidates but never mutate them.
type Candidate struct {
	ID                string         `json:"id"`
	Skills            []string       `json:"skills"`
	YearsOfExperience int            `json:"yearsOfExperience"`
	EducationLevel    EducationLevel `json:"educationLevel"`
	Availability      Availability   `json:"availability"`
	PortfolioURL      string         `json:"portfolioUrl,omitempty"`
	GithubURL         string         `json:"githubUrl,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Job is a posting candidates are matched against. Immutable once created.
type Job struct {
	ID                  string         `json:"id"`
	RequiredSkills      []string       `json:"requiredSkills"`
	MinExperience       int            `json:"minExperience"`
	EducationPreference EducationLevel `json:"educationPreference,omitempty"`
	Budget              float64        `json:"budget"`
	RoleType            RoleType       `json:"roleType"`
	CreatedAt           time.Time      `json:"createdAt"`
}
