package domain

type PrivacyLevel string

const (
	PrivacyPublic   PrivacyLevel = "public"
	PrivacyInternal PrivacyLevel = "internal"
	PrivacyPrivate  PrivacyLevel = "private"
)

// ValidPrivacyLevels is the canonical set of accepted privacy level strings.
var ValidPrivacyLevels = map[string]bool{
	"public": true, "internal": true, "private": true,
}

type ClientType string

const (
	ClientCompany    ClientType = "company"
	ClientIndividual ClientType = "individual"
)

var ValidClientTypes = map[string]bool{
	"company": true, "individual": true,
}

type ClientStatus string

const (
	ClientActive ClientStatus = "active"
	ClientPast   ClientStatus = "past"
)

var ValidClientStatuses = map[string]bool{
	"active": true, "past": true,
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
)

var ValidProjectStatuses = map[string]bool{
	"active": true, "paused": true, "completed": true,
}

// EntityType names the entity kinds a note, reminder, action item, or
// bookmark may attach to, and the base relations the query DSL accepts.
type EntityType string

const (
	EntityPerson      EntityType = "person"
	EntityClient      EntityType = "client"
	EntityProject     EntityType = "project"
	EntityEmployer    EntityType = "employer"
	EntityWorkSession EntityType = "work_session"
	EntityMeeting     EntityType = "meeting"
	EntityNote        EntityType = "note"
	EntityReminder    EntityType = "reminder"
)

var ValidEntityTypes = map[string]bool{
	"person": true, "client": true, "project": true, "employer": true,
	"work_session": true, "meeting": true, "note": true, "reminder": true,
}

// WeekBoundary selects which weekday starts a week for timecards and the
// this_week query shortcut.
type WeekBoundary string

const (
	WeekMonFri WeekBoundary = "mon-fri"
	WeekSunSat WeekBoundary = "sun-sat"
	WeekMonSun WeekBoundary = "mon-sun"
)

var ValidWeekBoundaries = map[string]bool{
	"mon-fri": true, "sun-sat": true, "mon-sun": true,
}

type RecurrenceFrequency string

const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
)

var ValidRecurrenceFrequencies = map[string]bool{
	"daily": true, "weekly": true, "monthly": true,
}

type ActionItemStatus string

const (
	ActionPending    ActionItemStatus = "pending"
	ActionInProgress ActionItemStatus = "in_progress"
	ActionCompleted  ActionItemStatus = "completed"
	ActionCancelled  ActionItemStatus = "cancelled"
)

var ValidActionItemStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "cancelled": true,
}
