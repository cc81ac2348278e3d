package calendar

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	TypeGeneral     EventType = "general"
	TypeMass        EventType = "mass"
	TypeMeeting     EventType = "meeting"
	TypeCelebration EventType = "celebration"
	TypeOther       EventType = "other"
)

var eventTypes = []EventType{TypeGeneral, TypeMass, TypeMeeting, TypeCelebration, TypeOther}

func ParseEventType(value string) (EventType, error) {
	candidate := EventType(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range eventTypes {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	Date        time.Time `gorm:"not null;index"`
	Time        string    `gorm:"not null"`
	Type        EventType `gorm:"not null;default:general"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "calendar_events"
}

// Input is both the create and the update payload. Update replaces every
// field except Type, which keeps the stored value when empty.
type Input struct {
	Title       string
	Description string
	Date        *time.Time
	Time        string
	Type        string
}
