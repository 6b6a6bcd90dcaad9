package stacks_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/escrow-invoice-api/pkg/stacks"
)

func body(n int) string { return strings.Repeat("A1", n)[:n] }

func TestIsValidAddress(t *testing.T) {
	assert.True(t, stacks.IsValidAddress("SP"+body(40)))
	assert.True(t, stacks.IsValidAddress("ST"+body(38)))
	assert.True(t, stacks.IsValidAddress("SP"+body(41)))

	assert.False(t, stacks.IsValidAddress("sp"+strings.ToLower(body(40))), "prefijo en minúscula")
	assert.False(t, stacks.IsValidAddress("SP"+body(37)), "cuerpo demasiado corto")
	assert.False(t, stacks.IsValidAddress("SP"+body(42)), "cuerpo demasiado largo")
	assert.False(t, stacks.IsValidAddress("SM"+body(40)), "prefijo desconocido")
	assert.False(t, stacks.IsValidAddress("SP"+body(39)+"-"), "carácter no alfanumérico")
	assert.False(t, stacks.IsValidAddress(""))
}

func TestValidateAddress_Motivos(t *testing.T) {
	assert.NoError(t, stacks.ValidateAddress("ST"+body(40)))
	assert.ErrorContains(t, stacks.ValidateAddress("XX"+body(40)), "empezar por")
	assert.ErrorContains(t, stacks.ValidateAddress("SP"+body(37)), "se recibieron 37")
	assert.ErrorContains(t, stacks.ValidateAddress("SP"+strings.ToLower(body(40))), "mayúsculas")
	assert.ErrorContains(t, stacks.ValidateAddress("SP"+body(39)+"_"), "alfanuméricos")
}

func TestNetwork(t *testing.T) {
	assert.Equal(t, "mainnet", stacks.Network("SP"+body(40)))
	assert.Equal(t, "testnet", stacks.Network("ST"+body(40)))
	assert.Equal(t, "", stacks.Network("nope"))
}
