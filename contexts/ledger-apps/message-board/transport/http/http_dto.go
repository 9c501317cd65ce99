package http

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type PostMessageRequest struct {
	Content string `json:"content" validate:"required,max=1024"`
}

type UpdateMessageRequest struct {
	Content string `json:"content" validate:"required,max=1024"`
}

type MessageResponse struct {
	MessageID string `json:"message_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	PostedAt  string `json:"posted_at"`
	UpdatedAt string `json:"updated_at"`
}

type MessageListResponse struct {
	Items []MessageResponse `json:"items"`
}
