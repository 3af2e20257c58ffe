package store

import "fmt"

// NotFoundError indica que o alvo de uma busca ou alteração não existe.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s não encontrado (%s)", e.Entity, e.Key)
}

// PersistenceError embrulha falhas do banco (indisponível, constraint, sequência esgotada).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
