package model

import "time"

// StoreItem is something members can redeem points for. A nil Stock means
// unlimited supply.
type StoreItem struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PointsCost  int       `json:"points_cost"`
	Stock       *int      `json:"stock"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// InStock reports whether at least one unit can be redeemed.
func (i StoreItem) InStock() bool {
	return i.Stock == nil || *i.Stock > 0
}

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionApproved  RedemptionStatus = "approved"
	RedemptionRejected  RedemptionStatus = "rejected"
	RedemptionFulfilled RedemptionStatus = "fulfilled"
)

func (s RedemptionStatus) Valid() bool {
	switch s {
	case RedemptionPending, RedemptionApproved, RedemptionRejected, RedemptionFulfilled:
		return true
	}
	return false
}

type RedemptionRequest struct {
	ID          int64            `json:"id"`
	WorkspaceID int64            `json:"workspace_id"`
	MemberID    int64            `json:"member_id"`
	StoreItemID int64            `json:"store_item_id"`
	PointsSpent int              `json:"points_spent"`
	Status      RedemptionStatus `json:"status"`
	Notes       string           `json:"notes"`
	AdminNotes  string           `json:"admin_notes"`
	ReviewedBy  *int64           `json:"reviewed_by"`
	ReviewedAt  *time.Time       `json:"reviewed_at"`
	CreatedAt   time.Time        `json:"created_at"`
}
