package diag

import (
	"bytes"
	"testing"

	"github.com/raymyers/cfront/pkg/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(line, col int) lexer.Pos {
	return lexer.Pos{File: "t.c", Line: line, Column: col}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "expected ';' after top-level asm block", Format(ErrExpectedSemiAfter, "top-level asm block"))
	assert.Equal(t, "to match this '('", Format(NoteMatching, "("))
	assert.Equal(t, "extra ';' outside of a function", Format(ExtTopLevelSemi))
	assert.Equal(t, "redefinition of '?'", Format(ErrRedefinition), "missing args render as ?")
}

func TestEveryIDHasCatalogEntry(t *testing.T) {
	for id := ErrParseError; id <= ErrKNRParamNotInList; id++ {
		_, ok := catalog[id]
		assert.True(t, ok, "missing catalog entry for %d", int(id))
	}
}

func TestListRecordsInOrder(t *testing.T) {
	l := NewList(nil)
	l.Report(pos(1, 1), ExtTopLevelSemi)
	l.Report(pos(2, 5), ErrExpectedRParen)
	l.Report(pos(2, 1), NoteMatching, "(")

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []ID{ExtTopLevelSemi, ErrExpectedRParen, NoteMatching}, l.IDs())
	assert.Equal(t, 1, l.ErrorCount())
	assert.Equal(t, 1, l.WarningCount())
	assert.True(t, l.HasErrors())
	assert.Equal(t, Extension, l.Diagnostics()[0].Level)
}

func TestPedanticErrors(t *testing.T) {
	l := NewList(&Options{PedanticErrors: true})
	l.Report(pos(1, 1), ExtTopLevelSemi)

	require.Equal(t, 1, l.Len())
	assert.Equal(t, Error, l.Diagnostics()[0].Level)
	assert.Equal(t, 1, l.ErrorCount())
}

func TestNoWarningsDropsExtensions(t *testing.T) {
	l := NewList(&Options{NoWarnings: true})
	l.Report(pos(1, 1), ExtEmptySourceFile)
	l.Report(pos(1, 1), ErrExpectedFnBody)

	assert.Equal(t, []ID{ErrExpectedFnBody}, l.IDs())
	assert.Equal(t, 0, l.WarningCount())
}

func TestErrorLimitDropsNotesWithTheirError(t *testing.T) {
	l := NewList(&Options{ErrorLimit: 1})
	l.Report(pos(1, 1), ErrExpectedRParen)
	l.Report(pos(1, 1), NoteMatching, "(")
	l.Report(pos(2, 1), ErrExpectedRSquare)
	l.Report(pos(2, 1), NoteMatching, "[")

	assert.Equal(t, []ID{ErrExpectedRParen, NoteMatching}, l.IDs())
	assert.Equal(t, 1, l.Dropped())
}

func TestRenderWithCaret(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	r.AddSource("t.c", "int x\n\tfoo bar;\n")

	l := NewList(nil)
	l.Report(pos(2, 6), ErrExpectedAfterDeclarator)
	r.RenderAll(l)

	want := "t.c:2:6: error: expected '=', ',', ';', 'asm', or '__attribute__' after declarator\n" +
		"\tfoo bar;\n" +
		"\t    ^\n" +
		"1 error generated.\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	r.Render(Diagnostic{Pos: pos(3, 1), ID: ExtTopLevelSemi, Level: Extension})

	assert.Equal(t, "t.c:3:1: warning: extra ';' outside of a function\n", buf.String())
}

func TestSummaryPlurals(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	l := NewList(nil)
	l.Report(pos(1, 1), ExtTopLevelSemi)
	l.Report(pos(1, 2), ExtTopLevelSemi)
	l.Report(pos(1, 3), ErrParseError)
	r.Summary(l)

	assert.Equal(t, "2 warnings and 1 error generated.\n", buf.String())
}
