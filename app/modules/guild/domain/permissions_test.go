package guilddomain

import (
	"testing"

	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

func TestCanManageLineup(t *testing.T) {
	member := &Membership{GuildID: 1, UserID: 2, Role: RoleMember}
	officer := &Membership{GuildID: 1, UserID: 3, Role: RoleOfficer}
	guildAdmin := &Membership{GuildID: 1, UserID: 4, Role: RoleGuildAdmin}

	tests := []struct {
		name       string
		user       User
		membership *Membership
		want       bool
	}{
		{"plain member", User{ID: 2}, member, false},
		{"officer", User{ID: 3}, officer, true},
		{"guild admin", User{ID: 4}, guildAdmin, true},
		{"site admin without membership", User{ID: 5, IsAdmin: true}, nil, true},
		{"site admin with member role", User{ID: 2, IsAdmin: true}, member, true},
		{"no membership", User{ID: 6}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(sharedtypes.CapManageLineup, tt.user, tt.membership); got != tt.want {
				t.Errorf("Can(manage_lineup) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanSignUp(t *testing.T) {
	member := &Membership{GuildID: 1, UserID: 2, Role: RoleMember}

	if !Can(sharedtypes.CapSignUp, User{ID: 2}, member) {
		t.Error("member denied sign_up")
	}
	if Can(sharedtypes.CapSignUp, User{ID: 6}, nil) {
		t.Error("non-member allowed sign_up")
	}
	// Site admin status does not imply raid participation.
	if Can(sharedtypes.CapSignUp, User{ID: 7, IsAdmin: true}, nil) {
		t.Error("site admin without membership allowed sign_up")
	}
}

func TestCanFullMatrix(t *testing.T) {
	officer := &Membership{Role: RoleOfficer}
	member := &Membership{Role: RoleMember}

	tests := []struct {
		capability sharedtypes.Capability
		membership *Membership
		want       bool
	}{
		{sharedtypes.CapManageGuild, officer, false},
		{sharedtypes.CapManageGuild, &Membership{Role: RoleGuildAdmin}, true},
		{sharedtypes.CapManageEvents, officer, true},
		{sharedtypes.CapManageMembers, member, false},
		{sharedtypes.CapRecordAttendance, officer, true},
		{sharedtypes.CapRecordAttendance, member, false},
		{sharedtypes.CapViewAttendance, member, true},
		{sharedtypes.Capability("unknown"), officer, false},
	}
	for _, tt := range tests {
		if got := Can(tt.capability, User{}, tt.membership); got != tt.want {
			t.Errorf("Can(%s, role=%s) = %v, want %v", tt.capability, tt.membership.Role, got, tt.want)
		}
	}
}

func TestCanTakeRole(t *testing.T) {
	if CanTakeRole(ClassMage, "tank") {
		t.Error("mage allowed to tank")
	}
	if !CanTakeRole(ClassDruid, "main_tank") {
		t.Error("druid denied main tank")
	}
	if !CanTakeRole(ClassPriest, "healer") {
		t.Error("priest denied healer")
	}
	// Unknown classes stay permissive; the server schema is authoritative.
	if !CanTakeRole(WowClass("Monk"), "tank") {
		t.Error("unknown class rejected")
	}
}
