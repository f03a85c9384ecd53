// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SectionType identifies one of the resume section collections a user owns.
type SectionType string

// Section type constants for the eight resume sections
const (
	SectionContact       SectionType = "contact"
	SectionSummary       SectionType = "summary"
	SectionEducation     SectionType = "education"
	SectionExperience    SectionType = "experience"
	SectionSkill         SectionType = "skill"
	SectionProject       SectionType = "project"
	SectionCertification SectionType = "certification"
	SectionInvolvement   SectionType = "involvement"
)

// SectionOrder is the fixed order in which sections appear in an aggregated
// resume profile, independent of per-item ordering within each section.
var SectionOrder = []SectionType{
	SectionContact,
	SectionSummary,
	SectionEducation,
	SectionExperience,
	SectionSkill,
	SectionProject,
	SectionCertification,
	SectionInvolvement,
}

// ParseSectionType converts a URL path segment into a SectionType.
func ParseSectionType(s string) (SectionType, error) {
	st := SectionType(s)
	for _, known := range SectionOrder {
		if st == known {
			return st, nil
		}
	}
	return "", &ErrValidation{Field: "section_type", Message: fmt.Sprintf("unknown section type: %s", s)}
}

// DateParts holds a month/year pair as entered by the user.
// Both parts are free-form strings ("05", "May", "2023").
type DateParts struct {
	Month string `json:"month,omitempty"`
	Year  string `json:"year,omitempty"`
}

// IsZero reports whether no date was entered.
func (d DateParts) IsZero() bool {
	return d.Month == "" && d.Year == ""
}

// String formats the date for display, e.g. "May 2023".
func (d DateParts) String() string {
	switch {
	case d.IsZero():
		return ""
	case d.Month == "":
		return d.Year
	case d.Year == "":
		return d.Month
	default:
		return d.Month + " " + d.Year
	}
}

// Contact is the payload for a contact section item.
type Contact struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
}

// Summary is the payload for a summary section item.
type Summary struct {
	Content string `json:"content" validate:"required"`
}

// Education is the payload for an education section item.
type Education struct {
	University string    `json:"university" validate:"required"`
	Degree     string    `json:"degree" validate:"required"`
	Major      string    `json:"major,omitempty"`
	CGPA       string    `json:"cgpa,omitempty"`
	StartDate  DateParts `json:"start_date,omitempty"`
	EndDate    DateParts `json:"end_date,omitempty"`
	IsPresent  bool      `json:"is_present,omitempty"`
}

// Experience is the payload for an experience section item.
type Experience struct {
	JobTitle    string    `json:"job_title" validate:"required"`
	Company     string    `json:"company" validate:"required"`
	CompanyURL  string    `json:"company_url,omitempty" validate:"omitempty,url"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	StartDate   DateParts `json:"start_date,omitempty"`
	EndDate     DateParts `json:"end_date,omitempty"`
	IsPresent   bool      `json:"is_present,omitempty"`
}

// Skill is the payload for a skill section item.
type Skill struct {
	Domain string `json:"domain,omitempty"`
	Name   string `json:"name" validate:"required"`
}

// Project is the payload for a project section item.
type Project struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
}

// Certification is the payload for a certification section item.
type Certification struct {
	Name           string    `json:"name" validate:"required"`
	IssuedBy       string    `json:"issued_by" validate:"required"`
	IssuedDate     DateParts `json:"issued_date,omitempty"`
	ExpirationDate DateParts `json:"expiration_date,omitempty"`
	URL            string    `json:"url,omitempty" validate:"omitempty,url"`
}

// Involvement is the payload for an involvement section item.
type Involvement struct {
	Organization string `json:"organization" validate:"required"`
	Role         string `json:"role" validate:"required"`
	Duration     string `json:"duration,omitempty"`
	Description  string `json:"description,omitempty"`
}

var payloadValidator = validator.New()

// NewPayload returns a zero payload value for a section type. The returned
// value is a pointer so it can be used as a json.Unmarshal target.
func NewPayload(section SectionType) (any, error) {
	switch section {
	case SectionContact:
		return &Contact{}, nil
	case SectionSummary:
		return &Summary{}, nil
	case SectionEducation:
		return &Education{}, nil
	case SectionExperience:
		return &Experience{}, nil
	case SectionSkill:
		return &Skill{}, nil
	case SectionProject:
		return &Project{}, nil
	case SectionCertification:
		return &Certification{}, nil
	case SectionInvolvement:
		return &Involvement{}, nil
	default:
		return nil, &ErrValidation{Field: "section_type", Message: fmt.Sprintf("unknown section type: %s", section)}
	}
}

// DecodePayload parses and validates a raw JSON payload for a section type.
// An existing payload may be passed as base, in which case the raw JSON is
// decoded over it (partial update semantics); pass nil for a fresh decode.
func DecodePayload(section SectionType, base json.RawMessage, raw json.RawMessage) (any, error) {
	target, err := NewPayload(section)
	if err != nil {
		return nil, err
	}

	if len(base) > 0 {
		if err := json.Unmarshal(base, target); err != nil {
			return nil, fmt.Errorf("failed to decode stored %s payload: %w", section, err)
		}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, &ErrValidation{Field: "payload", Message: fmt.Sprintf("invalid %s payload: %v", section, err)}
	}

	if err := payloadValidator.Struct(target); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on '%s' rule", fe.Tag())}
		}
		return nil, &ErrValidation{Field: "payload", Message: err.Error()}
	}

	return target, nil
}

// EncodePayload marshals a validated payload back to JSON for storage.
func EncodePayload(payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}
