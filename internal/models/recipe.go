package models

import "time"

// Recipe represents a recipe row in the recipes table.
type Recipe struct {
	ID           int64     `json:"id" db:"id"`                     // Primary key
	UserID       int64     `json:"user_id" db:"user_id"`           // Owning user, fixed at creation
	Title        string    `json:"title" db:"title"`               // Required, never empty once persisted
	Description  string    `json:"description" db:"description"`   // Optional free text
	Ingredients  string    `json:"ingredients" db:"ingredients"`   // Optional free text
	Instructions string    `json:"instructions" db:"instructions"` // Optional free text
	PrepTime     string    `json:"prep_time" db:"prep_time"`       // Optional free text, e.g. "45 min"
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Server-assigned at insert
}

// RecipeWithOwner is a recipe joined with its owner's username for listing
// and detail pages.
type RecipeWithOwner struct {
	Recipe
	OwnerUsername string `json:"username" db:"username"`
}

// RecipeInput carries the five mutable recipe fields submitted by a form.
// An update overwrites all of them unconditionally.
type RecipeInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	PrepTime     string `json:"prep_time"`
}
