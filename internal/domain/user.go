package domain

// User is a registered handle. Timestamps are unix seconds.
type User struct {
	Handle    string `json:"handle"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// HandleLookup is the result of resolving a handle to a user id.
type HandleLookup struct {
	Exists bool    `json:"exists"`
	UserID *string `json:"userId"`
	Handle *string `json:"handle"`
}
