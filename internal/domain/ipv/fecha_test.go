package ipv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

func TestPreviousDay(t *testing.T) {
	cases := map[string]string{
		"2024-03-15": "2024-03-14",
		"2024-03-01": "2024-02-29",
		"2023-03-01": "2023-02-28",
		"2024-01-01": "2023-12-31",
	}
	for in, want := range cases {
		got, err := ipv.PreviousDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestParseFecha_Errores(t *testing.T) {
	_, err := ipv.ParseFecha("  ")
	assert.ErrorIs(t, err, domain.ErrMissingDate)

	_, err = ipv.ParseFecha("15/03/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = ipv.PreviousDay("2024-02-30")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
