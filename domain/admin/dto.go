package admin

type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required,min=1"`
	HTML    string `json:"html" binding:"required,min=1"`
	Text    string `json:"text" binding:"omitempty"`
}

type VerifyRequest struct {
	Password string `json:"password" binding:"required"`
}
