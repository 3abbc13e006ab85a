package port

import "property-catalog/internal/core/domain"

// InputValidatorPort проверяет данные формы до отправки на сервер.
// Возвращает nil или ошибку с разбивкой по полям.
type InputValidatorPort interface {
	ValidatePropertyInput(input domain.PropertyInput) error
}
