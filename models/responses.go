package models

import "time"

// UserResponse is the public view of a user.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Hobby    string `json:"hobby"`
}

// DiaryResponse is a diary row enriched with the owner's display name.
type DiaryResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	IsPublic  bool      `json:"isPublic"`
	Emotion   *string   `json:"emotion"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    *uint     `json:"userId"`
	Username  string    `json:"username"`
}

// NewUserResponse maps a stored user onto its public view.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
		Hobby:    u.Hobby,
	}
}

// NewDiaryResponse maps a stored diary onto its response shape. An empty
// owner name falls back to the "unknown" placeholder.
func NewDiaryResponse(d *Diary, ownerName string) DiaryResponse {
	if ownerName == "" {
		ownerName = "unknown"
	}
	return DiaryResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Image:     d.Image,
		IsPublic:  d.IsPublic,
		Emotion:   d.Emotion,
		CreatedAt: d.CreatedAt,
		UserID:    d.UserID,
		Username:  ownerName,
	}
}
