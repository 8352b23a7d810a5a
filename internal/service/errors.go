package service

import "errors"

// Collaborator failures are fatal to a request and surfaced to the caller;
// everything else is a normal domain outcome.
var (
	// ErrClassifierUnavailable means the classifier service is unreachable
	// or its model is not loaded. Never conflated with "zero detections".
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrStoreUnavailable means the recipe store could not serve a read.
	ErrStoreUnavailable = errors.New("recipe store unavailable")

	// ErrIngredientNotFound means a canonical name has no stored ingredient.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrRecipeNotFound means the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrInvalidCredentials covers both unknown email and bad password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists means the registration email is already taken.
	ErrUserExists = errors.New("user already exists")
)
