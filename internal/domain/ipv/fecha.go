package ipv

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
)

// LayoutFecha es el formato de fecha que usa el backend.
const LayoutFecha = "2006-01-02"

// ParseFecha valida una fecha YYYY-MM-DD. Vacía devuelve ErrMissingDate.
func ParseFecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.ErrMissingDate
	}
	t, err := time.Parse(LayoutFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

// PreviousDay devuelve el día calendario anterior, con cambio de mes y año.
func PreviousDay(fecha string) (string, error) {
	t, err := ParseFecha(fecha)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(LayoutFecha), nil
}
