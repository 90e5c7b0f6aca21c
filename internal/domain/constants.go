package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 15
	DefaultTimezone               = "UTC"
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 120
	MaxServiceDurationMinutes   = 720 // 12 hours
	MaxVisitServices            = 10
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
