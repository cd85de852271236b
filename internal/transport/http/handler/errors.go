package handler

const (
	errInternalServer     = "Internal server error"
	errEmailTaken         = "User with this email already exists"
	errInvalidCredentials = "Invalid email or password"
	errUserNotFound       = "User not found"
	errWishNotFound       = "Wish not found"
	errNotWishOwner       = "User not authorized to delete this wish"
)
