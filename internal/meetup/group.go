package meetup

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// Group is a circle of users pings are sent to. Members are kept in
// join order without duplicates; membership checks are linear scans.
type Group struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Members    []uuid.UUID `json:"members"`
	InviteCode string      `json:"invite_code"`
}

type CreateGroupRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	CreatorID uuid.UUID `json:"creator_id"`
}

func (r CreateGroupRequest) Validate() error {
	if r.CreatorID == uuid.Nil {
		return Validation("creator_id is required")
	}
	return validateStruct(r)
}

// JoinGroupRequest accepts 6 to 8 character codes even though generation
// is fixed at 8; older shared links used shorter codes.
type JoinGroupRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	InviteCode string    `json:"invite_code" validate:"required,alphanum,min=6,max=8"`
}

func (r JoinGroupRequest) Validate() error {
	if r.UserID == uuid.Nil {
		return Validation("user_id is required")
	}
	return validateStruct(r)
}

type LeaveGroupRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type RegenerateInviteRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

const inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateInviteCode returns a random 8-character alphanumeric code.
func GenerateInviteCode() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}
	return string(buf)
}

// NewGroup creates a group with the creator as its first member.
func NewGroup(req CreateGroupRequest) Group {
	return Group{
		ID:         uuid.New(),
		Name:       req.Name,
		Members:    []uuid.UUID{req.CreatorID},
		InviteCode: GenerateInviteCode(),
	}
}

func (g *Group) AddMember(userID uuid.UUID) {
	if !g.IsMember(userID) {
		g.Members = append(g.Members, userID)
	}
}

func (g *Group) RemoveMember(userID uuid.UUID) {
	out := g.Members[:0]
	for _, id := range g.Members {
		if id != userID {
			out = append(out, id)
		}
	}
	g.Members = out
}

func (g *Group) RegenerateInviteCode() {
	g.InviteCode = GenerateInviteCode()
}

func (g Group) IsMember(userID uuid.UUID) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

func (g Group) Clone() Group {
	out := g
	out.Members = append([]uuid.UUID(nil), g.Members...)
	return out
}
