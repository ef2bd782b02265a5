package permission

import (
	"context"
	"strings"

	"filebot/src/core/chat"
)

// Level is the permission a command requires
type Level int

const (
	LevelEveryone Level = iota
	LevelAdmin
)

func (l Level) String() string {
	switch l {
	case LevelAdmin:
		return "admin"
	default:
		return "everyone"
	}
}

// Checker decides whether a sender holds a permission level
type Checker interface {
	Allowed(ctx context.Context, sender chat.Sender, level Level) bool
}

// AdminList trusts the host platform's admin role and additionally treats
// the configured sender IDs as admins.
type AdminList struct {
	ids map[string]struct{}
}

func NewAdminList(ids []string) *AdminList {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return &AdminList{ids: set}
}

func (a *AdminList) Allowed(ctx context.Context, sender chat.Sender, level Level) bool {
	if level == LevelEveryone {
		return true
	}
	if sender.Role == chat.RoleAdmin {
		return true
	}
	_, ok := a.ids[sender.ID]
	return ok
}
