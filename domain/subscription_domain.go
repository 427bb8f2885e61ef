package domain

var (
	MessageSuccessGetSubscriptions = "success get subscriptions"
	MessageFailedGetSubscriptions  = "failed to get subscriptions"
)

type (
	SubscriptionListRequest struct {
		PaginationRequest
		RecipesLimit int `query:"recipes_limit" validate:"omitempty,min=0"`
	}

	RecipeShort struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		ImageRef    string `json:"image,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	SubscribedAuthor struct {
		ID           uint64        `json:"id"`
		Email        string        `json:"email"`
		Username     string        `json:"username"`
		FirstName    string        `json:"first_name"`
		LastName     string        `json:"last_name"`
		IsSubscribed bool          `json:"is_subscribed"`
		Recipes      []RecipeShort `json:"recipes"`
		RecipesCount int64         `json:"recipes_count"`
	}

	SubscriptionListResponse struct {
		Authors []SubscribedAuthor `json:"results"`
		PaginationResponse
	}
)
