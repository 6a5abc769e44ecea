package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sangkips/salesdesk-api/internal/domain/finance"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"gorm.io/gorm"
)

// translateWriteError maps constraint violations reported by the driver to
// conflicts. conflictMsg describes the referencing records.
func translateWriteError(err error, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.NewConflictError(conflictMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflictError("Resource already exists")
	}
	return err
}

// fieldErrors collects validation failures
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.Field(field, message))
}

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, field+" is required")
	}
}

func (f *fieldErrors) percent(field string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		f.add(field, field+" must be between 0 and 100")
	}
}

func tooLarge(field string) string {
	return fmt.Sprintf("%s must not exceed %d", field, finance.MaxAmount)
}

// money checks an amount that may be zero
func (f *fieldErrors) money(field string, n finance.Number) {
	switch {
	case !finite(n) || n < 0:
		f.add(field, field+" must be zero or greater")
	case !finance.InRange(n):
		f.add(field, tooLarge(field))
	}
}

// positiveMoney checks an amount that must come to at least one cent and
// returns it in cents
func (f *fieldErrors) positiveMoney(field string, n finance.Number) int64 {
	if finite(n) && !finance.InRange(n) {
		f.add(field, tooLarge(field))
		return 0
	}
	cents := finance.CentsOf(n)
	if cents <= 0 {
		f.add(field, field+" must be greater than zero")
		return 0
	}
	return cents
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
