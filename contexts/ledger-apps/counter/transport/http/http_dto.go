package http

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CountResponse struct {
	Count uint64 `json:"count"`
}
