package domain

import "time"

var (
	MessageSuccessAddFavorite    = "recipe added to favorites"
	MessageSuccessRemoveFavorite = "recipe removed from favorites"
	MessageSuccessAddCart        = "recipe added to shopping cart"
	MessageSuccessRemoveCart     = "recipe removed from shopping cart"
	MessageSuccessSubscribe      = "subscribed successfully"
	MessageSuccessUnsubscribe    = "unsubscribed successfully"

	MessageFailedAddFavorite    = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite = "failed to remove recipe from favorites"
	MessageFailedAddCart        = "failed to add recipe to shopping cart"
	MessageFailedRemoveCart     = "failed to remove recipe from shopping cart"
	MessageFailedSubscribe      = "failed to subscribe"
	MessageFailedUnsubscribe    = "failed to unsubscribe"
)

type ToggleKind string

const (
	ToggleFavorite     ToggleKind = "favorite"
	ToggleCart         ToggleKind = "cart"
	ToggleSubscription ToggleKind = "subscription"
)

func (k ToggleKind) Valid() bool {
	switch k {
	case ToggleFavorite, ToggleCart, ToggleSubscription:
		return true
	}
	return false
}

// TargetsRecipe reports whether edges of this kind point at recipes rather
// than users.
func (k ToggleKind) TargetsRecipe() bool {
	return k == ToggleFavorite || k == ToggleCart
}

type Edge struct {
	ActorID   uint64     `json:"actor_id"`
	TargetID  uint64     `json:"target_id"`
	Kind      ToggleKind `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
}
