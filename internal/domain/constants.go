package domain

// Default booking rule values
const (
	DefaultStartHour                = 9
	DefaultEndHour                  = 18
	DefaultIntervalMinutes          = 30
	DefaultSameDayCutoffHour        = 16
	DefaultSameDayMinAdvanceMinutes = 120
	DefaultServiceDurationMinutes   = 30
)

// Business validation constants
const (
	MinIntervalMinutes          = 5
	MaxIntervalMinutes          = 480 // 8 hours
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480
	MaxSameDayMinAdvanceMinutes = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
