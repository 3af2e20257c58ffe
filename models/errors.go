package models

// ValidationError indica entrada inválida ou incompleta do cliente.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "Faltando campo " + field}
}

func InvalidField(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
