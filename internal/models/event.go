package models

import "time"

type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Date                time.Time `json:"date"`
	Time                string    `json:"time"`
	Price               int64     `json:"price"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
}

// Free reports whether the event requires no payment.
func (e *Event) Free() bool {
	return e.Price == 0
}

// Full reports whether no seats remain.
func (e *Event) Full() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}
