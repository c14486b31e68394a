package models

// SignUpRequest is the JSON body of POST /users/signup.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
	Role     string `json:"role"`
	Hobby    string `json:"hobby"`
}

// SignInRequest is the form body of POST /users/signin. The username field
// carries the email address, mirroring the OAuth2 password-grant form.
type SignInRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// CreateDiaryRequest is the JSON body of POST /.
type CreateDiaryRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	IsPublic bool   `json:"isPublic"`
}

// UpdateDiaryRequest is the JSON body of PUT /:id. Pointer fields give
// partial-update semantics: nil means "leave untouched", not "set empty".
type UpdateDiaryRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
	IsPublic *bool   `json:"isPublic"`
}
