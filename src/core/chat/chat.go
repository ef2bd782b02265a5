// Package chat holds the message shapes exchanged with the host chat
// platform: inbound events made of segments, and outbound replies.
package chat

// SegmentType identifies the kind of a message segment
type SegmentType string

const (
	SegmentText    SegmentType = "text"
	SegmentMention SegmentType = "at"
)

// Segment is one component of an inbound message
type Segment struct {
	Type   SegmentType `json:"type"`
	Text   string      `json:"text,omitempty"`
	Target string      `json:"target,omitempty"` // mentioned user ID
}

// Role is the sender's role as reported by the host platform
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Sender identifies who sent an event
type Sender struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role,omitempty"`
}

// Event is an inbound chat message
type Event struct {
	ID       string    `json:"id"`
	ChatID   string    `json:"chat_id"`
	Sender   Sender    `json:"sender"`
	Segments []Segment `json:"segments"`
}

// Text returns the text of the first segment that is not a mention.
// ok is false when the event carries nothing but mentions.
func (e Event) Text() (text string, ok bool) {
	for _, seg := range e.Segments {
		if seg.Type == SegmentMention {
			continue
		}
		return seg.Text, true
	}
	return "", false
}

// NewTextEvent builds an event carrying a single text segment.
func NewTextEvent(sender Sender, text string) Event {
	return Event{
		Sender:   sender,
		Segments: []Segment{{Type: SegmentText, Text: text}},
	}
}

// ReplyKind distinguishes plain text from file attachments
type ReplyKind string

const (
	ReplyPlain ReplyKind = "plain"
	ReplyFile  ReplyKind = "file"
)

// Attachment describes a file handed to the transport for delivery
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
	MIME string `json:"mime,omitempty"`
	Size int64  `json:"size"`
}

// Reply is one outbound message
type Reply struct {
	Kind ReplyKind   `json:"kind"`
	Text string      `json:"text,omitempty"`
	File *Attachment `json:"file,omitempty"`
}

// Plain builds a plain-text reply
func Plain(text string) Reply {
	return Reply{Kind: ReplyPlain, Text: text}
}

// File builds a file-attachment reply
func File(a Attachment) Reply {
	return Reply{Kind: ReplyFile, File: &a}
}

// String renders a reply for logs and terminal output
func (r Reply) String() string {
	if r.Kind == ReplyFile && r.File != nil {
		if r.File.URL != "" {
			return "[file] " + r.File.Name + " " + r.File.URL
		}
		return "[file] " + r.File.Name + " (" + r.File.Path + ")"
	}
	return r.Text
}
