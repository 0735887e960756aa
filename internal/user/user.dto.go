package user

type CreateUserRequest struct {
	ClerkID  string `json:"clerkId" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type UpdateProfileRequest struct {
	Username    string   `json:"username,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	WeightKg    *float64 `json:"peso_kg,omitempty"`
	DailyGoalMl int      `json:"meta_diaria_ml,omitempty"`
}
