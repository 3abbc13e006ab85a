package property_api_client

import "encoding/json"

// errorBody - тело ответа с ошибкой от API.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// unwrapData снимает обертку {"data": ...}, если она есть.
// Голое значение или массив возвращается без изменений.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	if data, ok := envelope["data"]; ok {
		return data
	}
	return raw
}
