package guilddomain

import (
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

// Can evaluates whether a user may perform a capability within a guild.
// Pure and deterministic for a given (user, membership) snapshot; callers
// re-evaluate on every mutation attempt rather than caching across
// membership changes.
//
// membership is nil when the user has no record in the guild's member
// list, which denies everything except what the site-wide admin flag
// grants.
func Can(capability sharedtypes.Capability, user User, membership *Membership) bool {
	siteAdmin := user.IsAdmin
	guildAdmin := membership != nil && membership.Role == RoleGuildAdmin
	admin := siteAdmin || guildAdmin
	officer := admin || (membership != nil && membership.Role == RoleOfficer)
	member := membership != nil

	switch capability {
	case sharedtypes.CapManageGuild:
		return admin
	case sharedtypes.CapManageEvents,
		sharedtypes.CapManageLineup,
		sharedtypes.CapManageMembers,
		sharedtypes.CapRecordAttendance:
		return officer
	case sharedtypes.CapViewAttendance, sharedtypes.CapSignUp:
		return member
	default:
		return false
	}
}
