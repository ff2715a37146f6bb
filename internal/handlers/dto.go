package handlers

import "recipebook/internal/models"

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RecipeRequest is the body of POST /recipes.
type RecipeRequest struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
	Bio      string `json:"bio"`
}

// RecipeResponse is the projection of a recipe with its owner. The recipe id
// is not part of it.
type RecipeResponse struct {
	Title             string       `json:"title"`
	Instructions      string       `json:"instructions"`
	MinutesToComplete *int         `json:"minutes_to_complete"`
	User              UserResponse `json:"user"`
}

// ErrorResponse carries a single error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorsResponse carries error messages per request field.
type FieldErrorsResponse struct {
	Errors map[string][]string `json:"errors"`
}

// NewUserResponse projects u onto its public fields.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
	}
}

// NewRecipeResponse projects r and its preloaded owner.
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
		User:              NewUserResponse(&r.User),
	}
}

// NewRecipeListResponse projects every recipe. The result is never nil, so
// an empty list encodes as [].
func NewRecipeListResponse(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}
