package tracker

// AddParticipantRequest represents the request to add a participant to the roster
type AddParticipantRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

// SelectParticipantRequest represents the request to select the active participant
type SelectParticipantRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

// RecordReactionRequest represents a reaction button press
type RecordReactionRequest struct {
	Emoji string `json:"emoji,omitempty" validate:"max=16"`
	Name  string `json:"name" validate:"required,notblank,max=100"`
}

// AddDividerRequest represents the request to insert a meeting boundary
type AddDividerRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,notblank,max=200"`
}

// StartTimerRequest represents the request to start the meeting timer
type StartTimerRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,notblank,max=200"`
}

// ExportPivotRequest represents query parameters for the pivot export
type ExportPivotRequest struct {
	Format string `query:"format" validate:"omitempty,oneof=json xlsx"`
}
