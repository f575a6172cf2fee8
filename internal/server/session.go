package server

import "github.com/google/uuid"

// GenerateParticipantID creates a unique participant ID.
func GenerateParticipantID() string {
	return uuid.NewString()
}
