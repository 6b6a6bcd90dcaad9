// Package validation implementa las reglas de validación de peticiones en el borde HTTP.
// Cada regla devuelve nil o un *domain.ValidationError con todas las violaciones encontradas.
//
// Las reglas estructurales usan go-playground/validator; la regla de montos
// (total declarado frente a la suma de líneas) usa la aritmética de internal/domain/invoice.
package validation

import (
	"errors"
	"sync"

	"github.com/go-playground/validator"

	"github.com/jhoicas/escrow-invoice-api/internal/domain"
	"github.com/jhoicas/escrow-invoice-api/pkg/stacks"
)

// TagStacksAddress tag registrado para direcciones Stacks.
const TagStacksAddress = "stacks_address"

var (
	engineOnce sync.Once
	engineInst *validator.Validate
)

// engine devuelve la instancia compartida; *validator.Validate es seguro para uso concurrente.
func engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation(TagStacksAddress, func(fl validator.FieldLevel) bool {
			return stacks.IsValidAddress(fl.Field().String())
		})
		engineInst = v
	})
	return engineInst
}

// messages tag de validator → mensaje. La clave "" es el mensaje por defecto.
type messages map[string]string

// checker acumula violaciones en el orden en que se declaran las reglas.
type checker struct {
	v        *validator.Validate
	fields   []domain.FieldViolation
	mismatch bool
}

func newChecker() *checker {
	return &checker{v: engine()}
}

// check valida value contra tags y, si falla, registra el mensaje del primer tag que falló.
func (c *checker) check(field string, value any, tags string, msgs messages) {
	err := c.v.Var(value, tags)
	if err == nil {
		return
	}
	tag := ""
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		tag = verrs[0].Tag()
	}
	msg, ok := msgs[tag]
	if !ok {
		msg = msgs[""]
	}
	c.add(field, msg)
}

func (c *checker) add(field, msg string) {
	c.fields = append(c.fields, domain.FieldViolation{Field: field, Message: msg})
}

func (c *checker) addMismatch(field, msg string) {
	c.mismatch = true
	c.add(field, msg)
}

// result devuelve nil si no hubo violaciones.
func (c *checker) result() error {
	if len(c.fields) == 0 {
		return nil
	}
	code := domain.CodeInvalidInput
	if c.mismatch {
		code = domain.CodeAmountMismatch
	}
	return &domain.ValidationError{Code: code, Fields: c.fields}
}
