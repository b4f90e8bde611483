package model

import "time"

// Channel names a distribution route for a survey.
type Channel string

const (
	ChannelEmail       Channel = "Email"
	ChannelDirectLink  Channel = "Direct Link"
	ChannelSocialMedia Channel = "Social Media"
	ChannelQRCode      Channel = "QR Code"
)

// ShareLink maps a public token to a survey. Stored in Redis; a zero
// ExpiresAt means the link does not expire.
type ShareLink struct {
	Token     string    `json:"token"`
	SurveyID  string    `json:"surveyId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Invite is one outbound email or SMS invitation.
type Invite struct {
	Recipient string `json:"recipient"` // email address or phone number
	Message   string `json:"message"`
}

// InviteResult reports the fire-and-forget outcome per recipient. No
// delivery guarantee, no retry.
type InviteResult struct {
	Recipient string `json:"recipient"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}
