package domain

import "time"

// Shop is the offline session of an installed shop as written by the app's auth layer
type Shop struct {
	ID          string    `json:"id"`
	Domain      string    `json:"domain"`
	AccessToken string    `json:"-"`
	Scopes      []string  `json:"scopes"`
	InstalledAt time.Time `json:"installed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
