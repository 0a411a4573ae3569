package directory

import "time"

// Doctor is a directory entry. Availability is display text (for example
// "Mon-Fri 9AM-5PM"); the scheduling engine does not interpret it. The
// doctor's name doubles as the scheduling key for appointments.
type Doctor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Experience     string    `json:"experience"`
	Contact        string    `json:"contact"`
	Availability   string    `json:"availability"`
	Gender         string    `json:"gender"`
	Fees           float64   `json:"fees"`
	CreatedAt      time.Time `json:"created_at"`
}
