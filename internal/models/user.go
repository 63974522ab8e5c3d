package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	StudentID    string    `json:"student_id"`
	RegisteredAt time.Time `json:"registered_at"`
}
