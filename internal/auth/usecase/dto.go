package usecase

type SignupInput struct {
	Name            string `json:"name" form:"name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" form:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type ForgotPasswordOutput struct {
	Message string `json:"message"`
}

type ResetPasswordInput struct {
	Token           string `json:"token" form:"token" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" form:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UpdatePasswordInput struct {
	PasswordCurrent string `json:"passwordCurrent" form:"passwordCurrent" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,strongpassword"`
	PasswordConfirm string `json:"passwordConfirm" form:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

// AuthOutput is what every successful credential transition terminates in:
// the user's public view plus a freshly issued session token.
type AuthOutput struct {
	User      UserInfo `json:"user"`
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expiresAt"`
}
