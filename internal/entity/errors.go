package entity

import "errors"

// Sentinelas que a camada de persistência devolve; o usecase traduz para a
// taxonomia de erros exposta ao chamador.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateName   = errors.New("name already in use")
	ErrInUse           = errors.New("record still referenced")
	ErrVersionConflict = errors.New("stale version")
	ErrAlreadyDone     = errors.New("task already completed")
)
