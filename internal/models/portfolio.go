package models

import "time"

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentFreelance  EmploymentType = "freelance"
	EmploymentInternship EmploymentType = "internship"
)

type LocationType string

const (
	LocationOnSite LocationType = "on_site"
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
)

type SkillCategory string

const (
	SkillFrontend   SkillCategory = "frontend"
	SkillBackend    SkillCategory = "backend"
	SkillDatabase   SkillCategory = "database"
	SkillDevOps     SkillCategory = "devops"
	SkillCloud      SkillCategory = "cloud"
	SkillMobile     SkillCategory = "mobile"
	SkillTesting    SkillCategory = "testing"
	SkillTools      SkillCategory = "tools"
	SkillSoftSkills SkillCategory = "soft_skills"
	SkillOther      SkillCategory = "other"
)

type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

type ProjectImage struct {
	ID         string    `json:"id"`
	Image      string    `json:"image"`
	ImageURL   string    `json:"image_url"`
	Caption    string    `json:"caption,omitempty"`
	Order      int       `json:"order"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Project is the list-view shape. Detail adds the long-form fields.
type Project struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Role              string    `json:"role"`
	Technologies      []string  `json:"technologies"`
	TechnologiesCount int       `json:"technologies_count"`
	StartDate         string    `json:"start_date"`
	EndDate           string    `json:"end_date,omitempty"`
	Current           bool      `json:"current"`
	Featured          bool      `json:"featured"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	ProjectURL        string    `json:"project_url,omitempty"`
	GithubURL         string    `json:"github_url,omitempty"`
	Duration          string    `json:"duration"`
	CreatedAt         time.Time `json:"created_at"`
}

type ProjectDetail struct {
	Project

	Profile         string         `json:"profile"`
	ProfileName     string         `json:"profile_name"`
	LongDescription string         `json:"long_description,omitempty"`
	TeamSize        int            `json:"team_size,omitempty"`
	DemoURL         string         `json:"demo_url,omitempty"`
	Video           string         `json:"video,omitempty"`
	VideoURL        string         `json:"video_url,omitempty"`
	Highlights      []string       `json:"highlights,omitempty"`
	Challenges      string         `json:"challenges,omitempty"`
	Outcomes        string         `json:"outcomes,omitempty"`
	Order           int            `json:"order"`
	Images          []ProjectImage `json:"images,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type ProjectRequest struct {
	Profile         string   `json:"profile,omitempty"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	LongDescription string   `json:"long_description,omitempty"`
	Technologies    []string `json:"technologies,omitempty"`
	Role            string   `json:"role,omitempty"`
	TeamSize        int      `json:"team_size,omitempty"`
	StartDate       string   `json:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty"`
	Current         *bool    `json:"current,omitempty"`
	ProjectURL      string   `json:"project_url,omitempty"`
	GithubURL       string   `json:"github_url,omitempty"`
	DemoURL         string   `json:"demo_url,omitempty"`
	Highlights      []string `json:"highlights,omitempty"`
	Challenges      string   `json:"challenges,omitempty"`
	Outcomes        string   `json:"outcomes,omitempty"`
	Featured        *bool    `json:"featured,omitempty"`
	Order           *int     `json:"order,omitempty"`
}

type Experience struct {
	ID                  string         `json:"id"`
	Profile             string         `json:"profile,omitempty"`
	Title               string         `json:"title"`
	Company             string         `json:"company"`
	EmploymentType      EmploymentType `json:"employment_type,omitempty"`
	Location            string         `json:"location,omitempty"`
	LocationType        LocationType   `json:"location_type,omitempty"`
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date,omitempty"`
	Current             bool           `json:"current"`
	Description         string         `json:"description,omitempty"`
	KeyResponsibilities []string       `json:"key_responsibilities,omitempty"`
	Achievements        []string       `json:"achievements,omitempty"`
	Technologies        []string       `json:"technologies,omitempty"`
	Order               int            `json:"order,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

type Education struct {
	ID              string    `json:"id"`
	Profile         string    `json:"profile,omitempty"`
	Institution     string    `json:"institution"`
	Degree          string    `json:"degree"`
	FieldOfStudy    string    `json:"field_of_study"`
	Location        string    `json:"location,omitempty"`
	Description     string    `json:"description,omitempty"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date,omitempty"`
	Current         bool      `json:"current"`
	GPA             string    `json:"gpa,omitempty"`
	Grade           string    `json:"grade,omitempty"`
	Activities      []string  `json:"activities,omitempty"`
	Achievements    []string  `json:"achievements,omitempty"`
	RelevantCourses []string  `json:"relevant_courses,omitempty"`
	Order           int       `json:"order,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Skill struct {
	ID                string           `json:"id"`
	Profile           string           `json:"profile,omitempty"`
	Name              string           `json:"name"`
	Category          SkillCategory    `json:"category"`
	ProficiencyLevel  ProficiencyLevel `json:"proficiency_level"`
	YearsOfExperience float64          `json:"years_of_experience"`
	Endorsements      int              `json:"endorsements,omitempty"`
	Order             int              `json:"order,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type Certification struct {
	ID             string    `json:"id"`
	Profile        string    `json:"profile,omitempty"`
	Name           string    `json:"name"`
	Issuer         string    `json:"issuer"`
	IssueDate      string    `json:"issue_date"`
	ExpirationDate string    `json:"expiration_date,omitempty"`
	CredentialID   string    `json:"credential_id,omitempty"`
	CredentialURL  string    `json:"credential_url,omitempty"`
	Description    string    `json:"description,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	Order          int       `json:"order,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserListItem is the admin user list row.
type UserListItem struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Role       Role       `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateUserRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone,omitempty"`
	Role             Role   `json:"role"`
	IsActive         *bool  `json:"is_active,omitempty"`
	SendWelcomeEmail *bool  `json:"send_welcome_email,omitempty"`
}

type UpdateUserRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}

type UserStats struct {
	TotalUsers      int `json:"total_users"`
	ActiveUsers     int `json:"active_users"`
	SuperAdmins     int `json:"super_admins"`
	Editors         int `json:"editors"`
	Viewers         int `json:"viewers"`
	VerifiedUsers   int `json:"verified_users"`
	MFAEnabledUsers int `json:"mfa_enabled_users"`
}
