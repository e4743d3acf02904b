package domain

// EventType names a change that clients watching a team are notified about
type EventType string

const (
	EventMemberCreated  EventType = "member.created"
	EventMemberUpdated  EventType = "member.updated"
	EventMemberDeleted  EventType = "member.deleted"
	EventTeamsGenerated EventType = "teams.generated"
	EventGameRecorded   EventType = "game.recorded"
	EventGameDeleted    EventType = "game.deleted"
	EventDraftUpdated   EventType = "draft.updated"
)
