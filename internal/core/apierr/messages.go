package apierr

var friendlyMessages = map[int]string{
	0:   "Unable to connect to the server. Please check your internet connection.",
	400: "Invalid request. Please check your input.",
	401: "You are not authorized. Please log in.",
	403: "You do not have permission to perform this action.",
	404: "The requested resource was not found.",
	409: "This resource already exists or conflicts with existing data.",
	422: "Validation error. Please check your input.",
	429: "Too many requests. Please try again later.",
	500: "Server error. Please try again later.",
	503: "Service temporarily unavailable. Please try again later.",
}

// UserFriendlyMessage - текст для показа пользователю.
// Для кодов без своего текста возвращается исходное сообщение.
func UserFriendlyMessage(err *APIError) string {
	if err == nil {
		return UnexpectedErrorMessage
	}
	if msg, ok := friendlyMessages[err.StatusCode]; ok {
		return msg
	}
	return err.Message
}
