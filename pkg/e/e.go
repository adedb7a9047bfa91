package e

import "fmt"

var (
	// Ошибки хранилищ
	ErrProductNotFound = fmt.Errorf("product not found")

	// Ошибки диалогового ядра
	ErrInvalidPrice     = fmt.Errorf("price must be a positive integer")
	ErrUnknownEditField = fmt.Errorf("unknown edit field")
	ErrMediaRequired    = fmt.Errorf("photo or document is required")
	ErrUnknownCallback  = fmt.Errorf("unknown callback payload")

	// Ошибки конфигурации и окружения
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
