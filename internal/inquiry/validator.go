package inquiry

import "strings"

// ValidationResult é o retorno de Validate.
type ValidationResult struct {
	Accepted bool
	Missing  []string
}

// Err devolve nil quando aceito, senão um *ValidationError.
func (r ValidationResult) Err() error {
	if r.Accepted {
		return nil
	}
	return &ValidationError{Missing: r.Missing}
}

// Validate só exige nome e telefone; o resto tem default e nunca falha.
func Validate(d Draft) ValidationResult {
	var missing []string
	if strings.TrimSpace(d.ClientName) == "" {
		missing = append(missing, LabelClientName)
	}
	if strings.TrimSpace(d.ClientPhone) == "" {
		missing = append(missing, LabelClientPhone)
	}
	return ValidationResult{Accepted: len(missing) == 0, Missing: missing}
}
