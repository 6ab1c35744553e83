package models

import (
	"time"

	"gorm.io/gorm"
)

type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusAssigned   IssueStatus = "assigned"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusClosed     IssueStatus = "closed"
)

type IssuePriority string

const (
	IssuePriorityLow      IssuePriority = "low"
	IssuePriorityMedium   IssuePriority = "medium"
	IssuePriorityHigh     IssuePriority = "high"
	IssuePriorityCritical IssuePriority = "critical"
)

type IssueCategory string

const (
	IssueCategoryEquipment     IssueCategory = "equipment"
	IssueCategorySafety        IssueCategory = "safety"
	IssueCategoryLogistics     IssueCategory = "logistics"
	IssueCategoryEnvironmental IssueCategory = "environmental"
	IssueCategoryOther         IssueCategory = "other"
)

type Issue struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	ZoneID      uint64        `gorm:"not null;index" json:"zone_id"`
	ReportedBy  uint64        `gorm:"not null;index" json:"reported_by"`
	AssignedTo  *uint64       `gorm:"index" json:"assigned_to"`
	Status      IssueStatus   `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Priority    IssuePriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Category    IssueCategory `gorm:"type:varchar(30);not null;default:'other'" json:"category"`
	Notes       string        `gorm:"type:text" json:"notes"`
	Attachments []string      `gorm:"serializer:json" json:"attachments"`
	ResolvedAt  *time.Time    `json:"resolved_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Zone     Zone      `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Reporter Employee  `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
	Assignee *Employee `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

// IsTerminal reports whether the status allows no further transition.
func (s IssueStatus) IsTerminal() bool {
	return s == IssueStatusClosed
}

// ValidIssueStatus reports whether s is a known issue status.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueStatusOpen, IssueStatusAssigned, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	}
	return false
}

// ValidIssuePriority reports whether p is a known issue priority.
func ValidIssuePriority(p IssuePriority) bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical:
		return true
	}
	return false
}

// ValidIssueCategory reports whether c is a known issue category.
func ValidIssueCategory(c IssueCategory) bool {
	switch c {
	case IssueCategoryEquipment, IssueCategorySafety, IssueCategoryLogistics, IssueCategoryEnvironmental, IssueCategoryOther:
		return true
	}
	return false
}

// IssueTransitionAllowed encodes the strictly forward issue state
// machine: open → assigned → in_progress → resolved → closed.
// No skipping and no backward edges; assignment out of open is handled
// separately because it also binds the assignee.
func IssueTransitionAllowed(from, to IssueStatus) bool {
	next := map[IssueStatus]IssueStatus{
		IssueStatusOpen:       IssueStatusAssigned,
		IssueStatusAssigned:   IssueStatusInProgress,
		IssueStatusInProgress: IssueStatusResolved,
		IssueStatusResolved:   IssueStatusClosed,
	}
	return next[from] == to
}
