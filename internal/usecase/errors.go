package usecase

import "errors"

// Códigos de erro de domínio — todos recuperáveis na borda da chamada.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInUse             = "IN_USE"
	CodeConflict          = "CONFLICT"
	CodeAlreadyCompleted  = "ALREADY_COMPLETED"
	CodeNotAvailable      = "NOT_AVAILABLE"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError cobre falhas de infraestrutura (banco, fila, SMTP). Sempre
// retryable pelo chamador: o core não deixa mutação parcial sem trilha.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const CodePersistence = "PERSISTENCE_ERROR"

func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(what string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: what + " not found"}
}

func NewDuplicateNameError(name string) *DomainError {
	return &DomainError{Code: CodeDuplicateName, Message: "name already in use: " + name}
}

func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{Code: CodeInvalidTransition, Message: "transition not allowed: " + from + " -> " + to}
}

func NewInUseError(what string) *DomainError {
	return &DomainError{Code: CodeInUse, Message: what + " is still referenced by leads"}
}

func NewConflictError(what string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: "concurrent update lost on " + what}
}

func NewAlreadyCompletedError(what string) *DomainError {
	return &DomainError{Code: CodeAlreadyCompleted, Message: what + " already completed"}
}

func NewNotAvailableError(feature string) *DomainError {
	return &DomainError{Code: CodeNotAvailable, Message: feature + " is not available"}
}

func NewPersistenceError(err error) *TechnicalError {
	return &TechnicalError{Code: CodePersistence, Message: "persistence failure: " + err.Error()}
}

func errCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsNotFound(err error) bool          { return errCode(err) == CodeNotFound }
func IsValidation(err error) bool        { return errCode(err) == CodeValidation }
func IsDuplicateName(err error) bool     { return errCode(err) == CodeDuplicateName }
func IsInvalidTransition(err error) bool { return errCode(err) == CodeInvalidTransition }
func IsInUse(err error) bool             { return errCode(err) == CodeInUse }
func IsConflict(err error) bool          { return errCode(err) == CodeConflict }
func IsAlreadyCompleted(err error) bool  { return errCode(err) == CodeAlreadyCompleted }
func IsNotAvailable(err error) bool      { return errCode(err) == CodeNotAvailable }
