package email

// ResetPasswordData là payload của task email:reset_password
type ResetPasswordData struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	ResetLink string `json:"reset_link"`
	ExpiresIn string `json:"expires_in"`
}

type EmailRequest struct {
	To      []string // Recipients
	Subject string
	Body    string // HTML hoặc plain text
	IsHTML  bool
}
