package response

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response конверт для ответов без документа: удаление, служебные сообщения.
// Сами документы API отдаёт без конверта, см. documents.go.
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func Message(msg string) Response {
	return Response{
		Status:  StatusSuccess,
		Message: msg,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Error:   err,
		Details: details,
	}
}
