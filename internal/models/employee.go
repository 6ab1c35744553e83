package models

import (
	"time"

	"gorm.io/gorm"
)

type EmployeeRole string

const (
	RoleEmployee EmployeeRole = "employee"
	RoleManager  EmployeeRole = "manager"
)

// Rank labels derived from accrued points.
const (
	RankRookie   = "Rookie"
	RankBronze   = "Bronze"
	RankSilver   = "Silver"
	RankGold     = "Gold"
	RankPlatinum = "Platinum"
)

type Employee struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	EmployeeCode string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_code"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	Role         EmployeeRole `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Department   string       `gorm:"type:varchar(100);not null" json:"department"`
	Position     string       `gorm:"type:varchar(100);not null" json:"position"`
	ZoneID       uint64       `gorm:"not null;index" json:"zone_id"`
	Points       int          `gorm:"not null;default:0" json:"points"`
	Rank         string       `gorm:"type:varchar(20);not null;default:'Rookie'" json:"rank"`
	Approved     bool         `gorm:"not null;default:false" json:"approved"`
	Active       bool         `gorm:"not null;default:true" json:"active"`
	HireDate     time.Time    `json:"hire_date"`
	Phone        string       `gorm:"type:varchar(50)" json:"phone"`
	Address      string       `gorm:"type:varchar(255)" json:"address"`
	DateOfBirth  time.Time    `json:"date_of_birth"`
	Gender       string       `gorm:"type:varchar(20)" json:"gender"`
	LastLoginAt  *time.Time   `json:"last_login_at"`

	// Notification/privacy preferences
	NotifyByEmail  bool `gorm:"not null;default:true" json:"notify_by_email"`
	NotifyInApp    bool `gorm:"not null;default:true" json:"notify_in_app"`
	ProfileVisible bool `gorm:"not null;default:true" json:"profile_visible"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Zone           Zone   `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	AssignedTasks  []Task `gorm:"foreignKey:AssignedTo" json:"-"`
	ReportedIssues []Issue `gorm:"foreignKey:ReportedBy" json:"-"`
}

// RankForPoints maps accrued points to a rank label via fixed thresholds.
func RankForPoints(points int) string {
	switch {
	case points >= 5000:
		return RankPlatinum
	case points >= 2500:
		return RankGold
	case points >= 1000:
		return RankSilver
	case points >= 250:
		return RankBronze
	default:
		return RankRookie
	}
}
