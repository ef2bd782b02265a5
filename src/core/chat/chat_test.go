package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filebot/src/core/chat"
)

func TestEventText(t *testing.T) {
	tests := []struct {
		name     string
		segments []chat.Segment
		wantText string
		wantOK   bool
	}{
		{
			name:     "plain text",
			segments: []chat.Segment{{Type: chat.SegmentText, Text: "查看 docs"}},
			wantText: "查看 docs",
			wantOK:   true,
		},
		{
			name: "mention first",
			segments: []chat.Segment{
				{Type: chat.SegmentMention, Target: "bot"},
				{Type: chat.SegmentText, Text: "删除 a.txt"},
				{Type: chat.SegmentText, Text: "ignored"},
			},
			wantText: "删除 a.txt",
			wantOK:   true,
		},
		{
			name:     "only mentions",
			segments: []chat.Segment{{Type: chat.SegmentMention, Target: "bot"}},
			wantOK:   false,
		},
		{
			name:   "empty",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := chat.Event{Segments: tt.segments}.Text()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, got)
		})
	}
}

func TestReplyString(t *testing.T) {
	assert.Equal(t, "hello", chat.Plain("hello").String())
	assert.Equal(t, "[file] a.txt (/data/a.txt)", chat.File(chat.Attachment{Name: "a.txt", Path: "/data/a.txt"}).String())
	assert.Equal(t, "[file] a.txt http://x/a", chat.File(chat.Attachment{Name: "a.txt", URL: "http://x/a"}).String())
}
