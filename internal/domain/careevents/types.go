package careevents

type EventType string

const (
	EventTypeVaccination        EventType = "vaccination"
	EventTypeWellnessExam       EventType = "wellness_exam"
	EventTypeParasitePrevention EventType = "parasite_prevention"
	EventTypeDentalCare         EventType = "dental_care"
	EventTypeGrooming           EventType = "grooming"
)

// EventTypes lista los tipos válidos, en orden estable.
var EventTypes = []EventType{
	EventTypeVaccination,
	EventTypeWellnessExam,
	EventTypeParasitePrevention,
	EventTypeDentalCare,
	EventTypeGrooming,
}

func (t EventType) Valid() bool {
	for _, v := range EventTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)
