package notice

import (
	"strings"
	"time"

	id "orgnet/pkg/domain"
	dErrors "orgnet/pkg/domain-errors"
)

// Registry is the name this registry reports in events and metrics.
const Registry = "notice"

// Category is the recipient audience for a notice. The set is closed; any
// other value is rejected at creation.
type Category string

const (
	CategoryManagers        Category = "managers"
	CategorySeniorEmployees Category = "senior_employees"
	CategoryDepartmentHeads Category = "department_heads"
	CategoryAllEmployees    Category = "all_employees"
	CategoryTechnicalTeam   Category = "technical_team"
	CategoryHRTeam          Category = "hr_team"
	CategoryFinanceTeam     Category = "finance_team"
)

var validCategories = map[Category]bool{
	CategoryManagers:        true,
	CategorySeniorEmployees: true,
	CategoryDepartmentHeads: true,
	CategoryAllEmployees:    true,
	CategoryTechnicalTeam:   true,
	CategoryHRTeam:          true,
	CategoryFinanceTeam:     true,
}

// ParseCategory normalizes external input to a Category. Matching is
// case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(s))
	if !validCategories[c] {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown notice category %q", s)
	}
	return c, nil
}

// Priority orders notices from Low (0) to Urgent (3).
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p Priority) IsValid() bool {
	return p <= PriorityUrgent
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return "Unknown"
}

// Notice is one posted announcement. Notices are immutable after creation;
// there is no status and no transition path.
type Notice struct {
	ID          uint64
	Category    Category
	Description string
	Priority    Priority
	Content     string
	Sender      id.Principal
	CreatedAt   time.Time
}
