package entities

import "time"

// ToggleEdge records that an actor has favorited a recipe, put it in their
// shopping cart, or subscribed to another user. The composite primary key
// allows at most one edge per (actor, target, kind).
type ToggleEdge struct {
	ActorID   uint64    `gorm:"primaryKey;autoIncrement:false" json:"actor_id"`
	TargetID  uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_toggle_edges_kind_target,priority:2" json:"target_id"`
	Kind      string    `gorm:"primaryKey;size:32;index:idx_toggle_edges_kind_target,priority:1" json:"kind"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
}
