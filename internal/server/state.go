package server

import (
	"github.com/google/uuid"

	"github.com/sensomatic/api/internal/meetup"
	"github.com/sensomatic/api/internal/store"
)

// State holds the entity collections. Each collection locks
// independently; there is no cross-collection atomicity.
type State struct {
	Users  *store.Collection[meetup.User]
	Groups *store.Collection[meetup.Group]
	Pings  *store.Collection[meetup.Ping]
}

func NewState() *State {
	return &State{
		Users:  store.NewCollection[meetup.User](),
		Groups: store.NewCollection[meetup.Group](),
		Pings:  store.NewCollection[meetup.Ping](),
	}
}

// FindGroupByInviteCode scans for a group whose current invite code
// matches. Codes are regenerated in place, so this is the only lookup
// that cannot go through an id.
func (s *State) FindGroupByInviteCode(code string) (meetup.Group, bool) {
	return s.Groups.Find(func(g meetup.Group) bool { return g.InviteCode == code })
}

func (s *State) UserGroups(userID uuid.UUID) []meetup.Group {
	return s.Groups.Filter(func(g meetup.Group) bool { return g.IsMember(userID) })
}

func (s *State) GroupPings(groupID uuid.UUID) []meetup.Ping {
	return s.Pings.Filter(func(p meetup.Ping) bool { return p.Group == groupID })
}
