package domain_test

import (
	"testing"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameworksForPackages(t *testing.T) {
	got := domain.FrameworksForPackages([]string{"react-dom", "@reduxjs/toolkit", "lodash", "react"})
	assert.Equal(t, []string{"react", "redux"}, got)
	assert.Empty(t, domain.FrameworksForPackages(nil))
}

func TestMergeFrameworks(t *testing.T) {
	assert.Equal(t, []string{"jest", "next", "react"}, domain.MergeFrameworks([]string{"react", "next"}, []string{"jest", "react"}))
	assert.Nil(t, domain.MergeFrameworks(nil, nil))
}

func TestRuleTable_SingletonFactories(t *testing.T) {
	base := domain.DefaultRuleTable()
	assert.True(t, base.IsSingletonFactory("createLogger"))
	assert.True(t, base.IsSingletonFactory("winston.createLogger"))
	assert.True(t, base.IsSingletonFactory("axios.create"))
	assert.False(t, base.IsSingletonFactory("express"))
	assert.False(t, base.IsSingletonFactory("Map"))
	assert.False(t, base.IsSingletonFactory(""))

	cfg := domain.DefaultConfig()
	cfg.Frameworks = []string{"express", "redux"}
	table, err := domain.NewRuleTable(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"express", "redux"}, table.Frameworks())
	assert.True(t, table.IsSingletonFactory("express"))
	assert.True(t, table.IsSingletonFactory("express.Router"))
	assert.True(t, table.IsSingletonFactory("configureStore"))
	assert.True(t, table.IsAllowed("cartReducer"))
	assert.False(t, base.IsAllowed("cartReducer"))
}

func TestKnownFrameworks(t *testing.T) {
	names := domain.KnownFrameworks()
	assert.Contains(t, names, "next")
	assert.IsIncreasing(t, names)
}
