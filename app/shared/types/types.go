package sharedtypes

// Numeric identifiers mirror the server schema; zero means "unset".
type (
	GuildID     int64
	UserID      int64
	CharacterID int64
	EventID     int64
	SignupID    int64
	SlotID      int64
)

// Capability names a guild-scoped action gated by the permission evaluator.
type Capability string

const (
	CapManageGuild      Capability = "manage_guild"
	CapManageEvents     Capability = "manage_events"
	CapManageLineup     Capability = "manage_lineup"
	CapManageMembers    Capability = "manage_members"
	CapViewAttendance   Capability = "view_attendance"
	CapRecordAttendance Capability = "record_attendance"
	CapSignUp           Capability = "sign_up"
)
