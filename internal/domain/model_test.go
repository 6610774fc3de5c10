package domain_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassRate(t *testing.T) {
	tests := []struct {
		passed, scanned int
		want            float64
	}{
		{0, 0, 100}, {3, 3, 100}, {0, 4, 0}, {2, 3, 66.7}, {1, 8, 12.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, domain.PassRate(tt.passed, tt.scanned), 0.001, "%d/%d", tt.passed, tt.scanned)
	}
}

func TestAuditReport_Summarize(t *testing.T) {
	r := domain.AuditReport{
		Violations: []domain.Violation{
			{File: "src/a.ts", Severity: domain.SeverityError},
			{File: "src/a.ts", Severity: domain.SeverityWarning},
			{File: "src/b.ts", Severity: domain.SeverityWarning},
		},
	}
	r.Summarize([]string{"src/a.ts", "src/b.ts", "src/c.ts", "src/d.ts"})

	assert.Equal(t, 4, r.FilesScanned)
	assert.Equal(t, 2, r.FilesFailed)
	assert.Equal(t, 2, r.FilesPassed)
	assert.InDelta(t, 50.0, r.PassRate, 0.001)
	assert.Equal(t, 1, r.Counts[domain.SeverityError])
	assert.Equal(t, 2, r.Counts[domain.SeverityWarning])
	assert.Equal(t, 0, r.Counts[domain.SeverityInfo])
	assert.NotNil(t, r.Skipped)
}

func TestAuditReport_Failed(t *testing.T) {
	warnOnly := domain.AuditReport{Violations: []domain.Violation{{File: "a", Severity: domain.SeverityWarning}}}
	warnOnly.Summarize([]string{"a"})
	assert.False(t, warnOnly.Failed())

	warnOnly.Strict = true
	assert.True(t, warnOnly.Failed())

	clean := domain.AuditReport{Strict: true}
	clean.Summarize(nil)
	assert.False(t, clean.Failed())

	withError := domain.AuditReport{Violations: []domain.Violation{{File: "a", Severity: domain.SeverityError}}}
	withError.Summarize([]string{"a"})
	assert.True(t, withError.Failed())
}

func TestAuditReport_JSONContract(t *testing.T) {
	r := domain.AuditReport{RunID: "r1", Profile: "all"}
	r.Summarize(nil)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"timestamp", "filesScanned", "violations", "passRate", "skipped", "counts", "runId"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, []any{}, raw["violations"])
}

func TestHeader_HasAndValue(t *testing.T) {
	h := domain.Header{Present: true, Fields: map[string]domain.Field{
		"layer": {Value: "primitive", Line: 2},
		"owner": {Value: "", Line: 3},
	}}

	assert.True(t, h.Has("owner"))
	v, ok := h.Value("layer")
	assert.True(t, ok)
	assert.Equal(t, "primitive", v)

	_, ok = h.Value("cssFile")
	assert.False(t, ok)
	assert.False(t, domain.Header{}.Has("layer"))
}

func TestIdentifiers_Declares(t *testing.T) {
	ids := domain.Identifiers{
		Functions: []domain.Identifier{{Name: "Button"}},
		Constants: []domain.Identifier{{Name: "MAX"}},
		Booleans:  []domain.Identifier{{Name: "isOpen"}},
	}
	assert.True(t, ids.Declares("Button"))
	assert.True(t, ids.Declares("MAX"))
	assert.False(t, ids.Declares("isOpen"))
}

func TestSourceFile_BaseName(t *testing.T) {
	f := domain.SourceFile{Path: "src/types/user.types.ts"}
	assert.Equal(t, "user.types", f.BaseName())
}
