package domain_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPlan_JSONKeys(t *testing.T) {
	plan := domain.FixPlan{
		RunID:    "run-1",
		Injector: domain.InjectorMetadata,
		DryRun:   true,
		Applied: []domain.AppliedFix{
			{Type: domain.FixInsertHeader, Path: "src/components/Card.tsx", Description: "inserted @layer, @cssFile"},
		},
		Skipped: []domain.AppliedFix{
			{Type: domain.FixAlreadyPresent, Path: "src/components/Button.tsx", Description: "already has metadata"},
		},
	}

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"run-1"`)
	assert.Contains(t, string(data), `"dry_run":true`)
	assert.Contains(t, string(data), `"type":"already_has_metadata"`)
}
