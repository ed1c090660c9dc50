package entities

import "time"

// VerifiedIdentity is what an identity provider asserts about a token holder.
type VerifiedIdentity struct {
	UID   string
	Email string
}

// AdminSession is an authenticated administrator session. A nil
// *AdminSession means the caller is anonymous.
type AdminSession struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// IdentityWebConfig is the browser-side identity provider configuration.
type IdentityWebConfig struct {
	APIKey            string `json:"apiKey"`
	AuthDomain        string `json:"authDomain"`
	ProjectID         string `json:"projectId"`
	StorageBucket     string `json:"storageBucket"`
	MessagingSenderID string `json:"messagingSenderId"`
	AppID             string `json:"appId"`
	MeasurementID     string `json:"measurementId"`
}

// LoginConfig is what the admin login page needs to start a sign-in.
type LoginConfig struct {
	Provider       string            `json:"provider"`
	Firebase       IdentityWebConfig `json:"firebase"`
	GoogleClientID string            `json:"googleClientId,omitempty"`
	AllowedDomain  string            `json:"allowedDomain"`
	AllowedEmails  []string          `json:"allowedEmails"`
	Enabled        bool              `json:"enabled"`
}
