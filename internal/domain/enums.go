package domain

// LogoType represents the allowed image types for a business logo.
type LogoType string

const (
	LogoTypePNG LogoType = "png"
	LogoTypeJPG LogoType = "jpg"
	LogoTypeGIF LogoType = "gif"
)

// AllowedLogoTypes maps LogoType to its MIME content type.
var AllowedLogoTypes = map[LogoType]string{
	LogoTypePNG: "image/png",
	LogoTypeJPG: "image/jpeg",
	LogoTypeGIF: "image/gif",
}

// AllowedLogoExtensions maps file extensions (without dot) to LogoType.
var AllowedLogoExtensions = map[string]LogoType{
	"png":  LogoTypePNG,
	"jpg":  LogoTypeJPG,
	"jpeg": LogoTypeJPG,
	"gif":  LogoTypeGIF,
}

// ClientType is the lifecycle state of a client.
type ClientType string

const (
	ClientTypeProspect ClientType = "prospect"
	ClientTypeClient   ClientType = "client"
	ClientTypeInactive ClientType = "inactive"
)

// Valid reports whether t is a known client type.
func (t ClientType) Valid() bool {
	switch t {
	case ClientTypeProspect, ClientTypeClient, ClientTypeInactive:
		return true
	}
	return false
}

// EstimateStatus is the lifecycle state of an estimate.
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusAccepted EstimateStatus = "accepted"
)

// Editable reports whether an estimate in this status may still be changed.
func (s EstimateStatus) Editable() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent:
		return true
	case EstimateStatusAccepted:
		return false
	}
	return false
}

// Frequency is how often a client is serviced.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyOneTime  Frequency = "one_time"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyOneTime:
		return true
	}
	return false
}

// IntervalDays returns the number of days between consecutive visits.
// ok is false for one-time service, which never repeats.
// Monthly is a fixed 30 days, not a calendar month.
func (f Frequency) IntervalDays() (days int, ok bool) {
	switch f {
	case FrequencyWeekly:
		return 7, true
	case FrequencyBiweekly:
		return 14, true
	case FrequencyMonthly:
		return 30, true
	case FrequencyOneTime:
		return 0, false
	}
	return 0, false
}

// Label returns a human-readable frequency name.
func (f Frequency) Label() string {
	switch f {
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyBiweekly:
		return "Bi-weekly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyOneTime:
		return "One-time"
	}
	return string(f)
}

// VisitStatus is the lifecycle state of a visit.
type VisitStatus string

const (
	VisitStatusScheduled VisitStatus = "scheduled"
	VisitStatusCompleted VisitStatus = "completed"
	VisitStatusCancelled VisitStatus = "cancelled"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

// ScheduleMode selects between a single visit and a recurring series.
type ScheduleMode string

const (
	ScheduleModeOneTime   ScheduleMode = "one_time"
	ScheduleModeRecurring ScheduleMode = "recurring"
)

// SendMethod is the channel used to deliver an estimate or invoice link.
type SendMethod string

const (
	SendMethodEmail SendMethod = "email"
	SendMethodText  SendMethod = "text"
)

// Valid reports whether m is a known send method.
func (m SendMethod) Valid() bool {
	switch m {
	case SendMethodEmail, SendMethodText:
		return true
	}
	return false
}

// PaymentMethod is one of the onboarding payment options.
type PaymentMethod string

const (
	PaymentMethodVenmo PaymentMethod = "venmo"
	PaymentMethodZelle PaymentMethod = "zelle"
	PaymentMethodCheck PaymentMethod = "check"
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodOther PaymentMethod = "other"
)
