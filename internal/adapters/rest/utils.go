package rest

import (
	"encoding/json"
	"net/http"
	"property-catalog/internal/core/apierr"
)

// WriteJSONError отправляет ошибку в той же форме, что и APIError.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Message: message, StatusCode: statusCode})
}

// WriteAPIError переводит ошибку каталога в HTTP-ответ.
// Сетевая ошибка (код 0) отдается как 502: до сервиса каталога не достучались.
func WriteAPIError(w http.ResponseWriter, err error) {
	apiErr := apierr.Parse(err)

	status := apiErr.StatusCode
	switch {
	case status == apierr.StatusNetwork:
		status = http.StatusBadGateway
	case status < 400 || status > 599:
		status = http.StatusInternalServerError
	}

	RespondWithJSON(w, status, ErrorResponse{
		Message:    apierr.UserFriendlyMessage(apiErr),
		StatusCode: apiErr.StatusCode,
		Errors:     apiErr.Errors,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}
