package model

import "time"

// Scheme is one government assistance scheme shown in the browser.
type Scheme struct {
	ID               string   `json:"id" gorm:"primaryKey"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	EligibilityNotes string   `json:"eligibility_notes"`
	States           []string `json:"states" gorm:"serializer:json"`
	FarmerCategories []string `json:"farmer_categories" gorm:"serializer:json"`
	ApplicationURL   string   `json:"application_url"`
	Deadline         string   `json:"deadline,omitempty"`
}

// SchemeNotification is the payload published on scheme/new/<state> when a
// new scheme is announced.
type SchemeNotification struct {
	Scheme      Scheme    `json:"scheme"`
	PublishedAt time.Time `json:"published_at"`
}
