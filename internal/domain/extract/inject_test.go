package extract_test

import (
	"strings"
	"testing"

	"github.com/grammarops/grammarops/internal/domain/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadataBlock = "/**\n * @layer primitive\n * @cssFile /src/styles/components/card.css\n */\n"

var metadataKeys = []string{"layer", "cssFile"}

func TestInjectHeader_InsertsAtTop(t *testing.T) {
	src := "export function Card() {}\n"
	out, changed := extract.InjectHeader(src, metadataBlock, metadataKeys, 20)

	require.True(t, changed)
	assert.Equal(t, metadataBlock+src, out)
}

func TestInjectHeader_AfterShebang(t *testing.T) {
	src := "#!/usr/bin/env node\nconsole.log('hi')\n"
	out, changed := extract.InjectHeader(src, metadataBlock, metadataKeys, 20)

	require.True(t, changed)
	assert.True(t, strings.HasPrefix(out, "#!/usr/bin/env node\n/**\n"))
	assert.True(t, strings.HasSuffix(out, "console.log('hi')\n"))
}

func TestInjectHeader_ShebangOnly(t *testing.T) {
	out, changed := extract.InjectHeader("#!/bin/sh", metadataBlock, metadataKeys, 20)
	require.True(t, changed)
	assert.Equal(t, "#!/bin/sh\n"+metadataBlock, out)
}

func TestInjectHeader_Idempotent(t *testing.T) {
	src := "export function Card() {}\n"
	once, changed := extract.InjectHeader(src, metadataBlock, metadataKeys, 20)
	require.True(t, changed)

	twice, changed := extract.InjectHeader(once, metadataBlock, metadataKeys, 20)
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}

func TestInjectHeader_AnyRecognizedKeyLeavesFileUntouched(t *testing.T) {
	src := "/**\n * @llm-write full-edit\n */\nexport function Card() {}\n"
	directives := "/**\n * @llm-read true\n * @llm-write full-edit\n * @llm-role presentation\n */\n"

	out, changed := extract.InjectHeader(src, directives, []string{"llm-read", "llm-write", "llm-role"}, 20)
	assert.False(t, changed)
	assert.Equal(t, src, out)
}

func TestInjectHeader_KeepsExistingComment(t *testing.T) {
	src := "/* Copyright Acme */\nexport function Card() {}\n"
	out, changed := extract.InjectHeader(src, metadataBlock, metadataKeys, 20)

	require.True(t, changed)
	assert.True(t, strings.HasSuffix(out, src))
}
