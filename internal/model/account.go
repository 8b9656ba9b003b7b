package model

import (
	"strings"
	"time"
)

// DefaultDisplayName is shown when the user never entered a name.
const DefaultDisplayName = "Friend"

// UserAccount is the single anonymous profile on this device.
type UserAccount struct {
	ID                 string    `json:"id"`
	DisplayName        string    `json:"displayName"`
	CreatedAt          time.Time `json:"createdAt"`
	OnboardingComplete bool      `json:"onboardingComplete"`
}

// Name returns the display name, or the placeholder when blank.
func (u UserAccount) Name() string {
	if n := strings.TrimSpace(u.DisplayName); n != "" {
		return n
	}
	return DefaultDisplayName
}
