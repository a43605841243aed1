package entity

import "time"

type LoginLog struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

type ActivityLog struct {
	ID         int       `json:"id"`
	UserID     *int      `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type,omitempty"`
	EntityID   *int      `json:"entity_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type LogFilter struct {
	Skip   int    `form:"skip"`
	Limit  int    `form:"limit"`
	Action string `form:"action"`
	UserID *int   `form:"user_id"`
}
