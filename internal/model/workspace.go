package model

import "time"

type Workspace struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleMember  = "member"
	RoleManager = "manager"
)

// Member is a user's membership in one workspace. Points and EarnedBadgeIDs
// are owned by the incentive engine.
type Member struct {
	ID             int64     `json:"id"`
	WorkspaceID    int64     `json:"workspace_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Points         int       `json:"points"`
	EarnedBadgeIDs []string  `json:"earned_badge_ids"`
	HasAPIKey      bool      `json:"has_api_key"`
	CreatedAt      time.Time `json:"created_at"`
}

type Project struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}
