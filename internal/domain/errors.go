package domain

import "errors"

var (
	// ErrRoomNotFound is returned when an event targets a room that was never joined.
	ErrRoomNotFound = errors.New("room not found")
	// ErrParticipantNotFound is returned when a connection acts on a room it is not part of.
	ErrParticipantNotFound = errors.New("participant not found in room")
	// ErrInvalidStatus indicates an unknown room phase.
	ErrInvalidStatus = errors.New("invalid room status")
	// ErrInvalidAction indicates an action type that carries no penalty bucket.
	ErrInvalidAction = errors.New("invalid action type")
	// ErrQuestionSetNotFound indicates no standard question set exists for a difficulty.
	ErrQuestionSetNotFound = errors.New("question set not found")
)
