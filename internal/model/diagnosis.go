package model

import "time"

// Diagnosis is one stored crop-disease diagnosis. Synced marks whether the
// record has been uploaded since it was taken offline.
type Diagnosis struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Disease         string    `json:"disease"`
	Confidence      float64   `json:"confidence"`
	Treatment       string    `json:"treatment"`
	OrganicSolution string    `json:"organic_solution"`
	Location        string    `json:"location,omitempty"`
	TakenAt         time.Time `json:"taken_at"`
	Synced          bool      `json:"synced"`
}
