package permission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"filebot/src/core/chat"
	"filebot/src/core/permission"
)

func TestAdminList(t *testing.T) {
	checker := permission.NewAdminList([]string{"10001", " 10002 ", ""})

	tests := []struct {
		name   string
		sender chat.Sender
		level  permission.Level
		want   bool
	}{
		{name: "everyone level", sender: chat.Sender{ID: "42"}, level: permission.LevelEveryone, want: true},
		{name: "platform admin", sender: chat.Sender{ID: "42", Role: chat.RoleAdmin}, level: permission.LevelAdmin, want: true},
		{name: "configured admin", sender: chat.Sender{ID: "10001"}, level: permission.LevelAdmin, want: true},
		{name: "trimmed id", sender: chat.Sender{ID: "10002"}, level: permission.LevelAdmin, want: true},
		{name: "member", sender: chat.Sender{ID: "42", Role: chat.RoleMember}, level: permission.LevelAdmin, want: false},
		{name: "empty id", sender: chat.Sender{}, level: permission.LevelAdmin, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.Allowed(context.Background(), tt.sender, tt.level))
		})
	}
}
