package inquiry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("inquiry: validation failed")
	ErrStorage    = errors.New("inquiry: storage failed")
)

// ValidationError lista os campos obrigatórios que vieram vazios.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StorageError indica falha ao gravar o registro local. Não bloqueia o envio.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
