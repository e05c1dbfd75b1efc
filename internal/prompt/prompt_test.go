package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grupokossodo/intake-agent/internal/model"
)

func TestForCompanySelectsVariant(t *testing.T) {
	router := ForCompany("")
	kossodo := ForCompany(model.CompanyKossodo)
	kossomet := ForCompany(model.CompanyKossomet)

	require.NotEqual(t, router, kossodo)
	require.NotEqual(t, router, kossomet)
	require.NotEqual(t, kossodo, kossomet)

	require.True(t, strings.Contains(router, "set_company"))
	require.True(t, strings.Contains(kossodo, "asesor de ventas"))
	require.True(t, strings.Contains(kossomet, "técnico"))
}

func TestUnknownCompanyFallsBackToRouter(t *testing.T) {
	require.Equal(t, ForCompany(""), ForCompany(model.Company("something-else")))
}
