package application_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grammarops/grammarops/internal/adapters/outbound/backup"
	"github.com/grammarops/grammarops/internal/adapters/outbound/config"
	"github.com/grammarops/grammarops/internal/adapters/outbound/fixlog"
	"github.com/grammarops/grammarops/internal/adapters/outbound/scanner"
	"github.com/grammarops/grammarops/internal/application"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixService() *application.FixService {
	return application.NewFixService(scanner.New(nil), config.New(), backup.New(), fixlog.New(), nil)
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func paths(fixes []domain.AppliedFix) []string {
	var out []string
	for _, f := range fixes {
		out = append(out, f.Path)
	}
	return out
}

func TestFixService_InsertsMissingMetadata(t *testing.T) {
	dir := copyTree(t, messyFixture)
	original := readFile(t, dir, "src/components/card.tsx")

	plan, err := newFixService().Apply(context.Background(), dir, domain.FixOptions{Injector: domain.InjectorMetadata}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/components/card.tsx"}, paths(plan.Applied))
	assert.ElementsMatch(t, []string{
		"src/constants/config.ts", "src/hooks/useData.ts", "src/pages/Dashboard.tsx", "src/utils/helpers.ts",
	}, paths(plan.Skipped))

	updated := readFile(t, dir, "src/components/card.tsx")
	assert.True(t, strings.HasPrefix(updated, "/**\n * @layer primitive\n * @cssFile /src/styles/components/card.css\n */\n"))
	assert.True(t, strings.HasSuffix(updated, original))

	entries, err := fixlog.New().Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, plan.RunID, entries[0].RunID)
}

func TestFixService_Idempotent(t *testing.T) {
	dir := copyTree(t, messyFixture)
	svc := newFixService()

	_, err := svc.Apply(context.Background(), dir, domain.FixOptions{}, nil)
	require.NoError(t, err)
	once := readFile(t, dir, "src/components/card.tsx")

	plan, err := svc.Apply(context.Background(), dir, domain.FixOptions{}, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Applied)
	assert.Equal(t, once, readFile(t, dir, "src/components/card.tsx"))
}

func TestFixService_DryRunWritesNothing(t *testing.T) {
	dir := copyTree(t, messyFixture)
	original := readFile(t, dir, "src/components/card.tsx")

	svc := newFixService()
	plan, err := svc.Apply(context.Background(), dir, domain.FixOptions{DryRun: true}, nil)
	require.NoError(t, err)

	assert.True(t, plan.DryRun)
	assert.Len(t, plan.Applied, 1)
	assert.Equal(t, original, readFile(t, dir, "src/components/card.tsx"))

	_, err = svc.Rollback(dir)
	assert.ErrorIs(t, err, domain.ErrNoBackup)
}

func TestFixService_Declined(t *testing.T) {
	dir := copyTree(t, messyFixture)
	original := readFile(t, dir, "src/components/card.tsx")

	var asked []string
	plan, err := newFixService().Apply(context.Background(), dir, domain.FixOptions{}, func(rel, block string) bool {
		asked = append(asked, rel)
		assert.Contains(t, block, "@layer")
		return false
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/components/card.tsx"}, asked)
	assert.Empty(t, plan.Applied)
	assert.Contains(t, paths(plan.Skipped), "src/components/card.tsx")
	assert.Equal(t, original, readFile(t, dir, "src/components/card.tsx"))
}

func TestFixService_Rollback(t *testing.T) {
	dir := copyTree(t, messyFixture)
	original := readFile(t, dir, "src/components/card.tsx")
	svc := newFixService()

	_, err := svc.Apply(context.Background(), dir, domain.FixOptions{}, nil)
	require.NoError(t, err)
	require.NotEqual(t, original, readFile(t, dir, "src/components/card.tsx"))

	restored, err := svc.Rollback(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/components/card.tsx"}, restored)
	assert.Equal(t, original, readFile(t, dir, "src/components/card.tsx"))
}

func TestFixService_LLMDirectivesKeepMetadataVisible(t *testing.T) {
	dir := copyTree(t, cleanFixture)

	plan, err := newFixService().Apply(context.Background(), dir, domain.FixOptions{
		Injector: domain.InjectorLLMDirectives,
		Files:    []string{"src/components/Button.tsx"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, plan.Applied, 1)

	content := readFile(t, dir, "src/components/Button.tsx")
	assert.True(t, strings.HasPrefix(content, "/**\n * @llm-read true\n * @llm-write full-edit\n * @llm-role presentation\n */\n/**\n * @layer primitive"))

	report, err := newAuditService(nil).Audit(context.Background(), dir, application.AuditOptions{})
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
}

func TestFixService_ExistingDirectiveIsLeftAlone(t *testing.T) {
	dir := copyTree(t, cleanFixture)
	const rel = "src/components/Badge.tsx"
	original := "/**\n * @llm-write read-only\n */\nexport function Badge() {\n  return null;\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.FromSlash(rel)), []byte(original), 0644))

	plan, err := newFixService().Apply(context.Background(), dir, domain.FixOptions{
		Injector: domain.InjectorLLMDirectives,
		Files:    []string{rel},
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, plan.Applied)
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, rel, plan.Skipped[0].Path)
	assert.Equal(t, domain.FixAlreadyPresent, plan.Skipped[0].Type)
	assert.Equal(t, original, readFile(t, dir, rel))
}

func TestFixService_ExplicitFileOutsideInjector(t *testing.T) {
	dir := copyTree(t, messyFixture)

	plan, err := newFixService().Apply(context.Background(), dir, domain.FixOptions{
		Files: []string{"src/styles/components/orphan.css"},
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, plan.Applied)
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, domain.FixNotApplicable, plan.Skipped[0].Type)
}

func TestFixService_UnknownInjector(t *testing.T) {
	_, err := newFixService().Apply(context.Background(), cleanFixture, domain.FixOptions{Injector: "owner"}, nil)
	assert.ErrorIs(t, err, application.ErrUnknownInjector)
}

func TestFixService_CustomInjector(t *testing.T) {
	dir := copyTree(t, cleanFixture)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".grammarops.yaml"), []byte(`
injectors:
  - name: owner
    keys: [owner]
    categories: [hook]
    template: "/** @owner {{.Category}}-team */"
`), 0644))

	plan, err := newFixService().Apply(context.Background(), dir, domain.FixOptions{Injector: "owner"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/hooks/useToggle.ts"}, paths(plan.Applied))
	assert.True(t, strings.HasPrefix(readFile(t, dir, "src/hooks/useToggle.ts"), "/** @owner hook-team */\n/**\n * @layer hook"))
}

func TestAuditAndFix(t *testing.T) {
	dir := copyTree(t, messyFixture)
	audit := newAuditService(nil)

	report, err := application.AuditAndFix(context.Background(), audit, newFixService(), dir, application.AuditOptions{})
	require.NoError(t, err)

	// useData.ts has an empty @layer, so injection leaves it alone.
	assert.Equal(t, []string{"src/components/card.tsx"}, report.Fixed)
	for _, v := range report.Violations {
		if v.File == "src/components/card.tsx" {
			assert.NotEqual(t, domain.RuleMetadataBlock, v.Rule)
		}
	}
}
