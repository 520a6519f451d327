package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// resolveSource parses src and runs the resolver, recovering any fatal
// diagnostic into a plain error so tests can assert on it without a panic.
func resolveSource(t *testing.T, src string, warningsAsErrors bool) (warnings []Diagnostic, fatalErr error) {
	t.Helper()
	tokens, err := Lex(src)
	require.NoError(t, err)
	prog, err := Parse(tokens, src)
	require.NoError(t, err)

	sink := &diagSink{warningsAsErrors: warningsAsErrors}
	defer func() {
		if rec := recover(); rec != nil {
			fd, ok := rec.(fatalDiagnostic)
			require.True(t, ok, "unexpected panic: %v", rec)
			fatalErr = fd
		}
	}()
	Resolve(prog, sink)
	return sink.warnings, nil
}

func TestResolve_ScalarAssignmentNoDiagnostics(t *testing.T) {
	warnings, err := resolveSource(t, "int a; int main(){ a=1; return a; }", false)
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestResolve_ImplicitFloatCast(t *testing.T) {
	warnings, err := resolveSource(t, "float x; int main(){ x = 2; return 0; }", false)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Equal(t, ImplicitTypeCasting, warnings[0].Kind)
}

func TestResolve_IndexedAssignmentCoercesIndex(t *testing.T) {
	warnings, err := resolveSource(t, "int a[3]; int main(){ a[1.5]=2; return 0; }", false)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	for _, w := range warnings {
		require.Equal(t, ImplicitTypeCasting, w.Kind)
	}
}

func TestResolve_MissingReturnValueIsFatal(t *testing.T) {
	_, err := resolveSource(t, "int main(){ return; }", false)
	require.Error(t, err)
	fd, ok := err.(fatalDiagnostic)
	require.True(t, ok)
	require.Equal(t, TypeError, fd.diag.Kind)
	require.Equal(t, "Should return a value", fd.diag.Detail)
}

func TestResolve_CallArityMismatchIsFatal(t *testing.T) {
	_, err := resolveSource(t, "int f(int x){ return x; } int main(){ return f(1, 2); }", false)
	require.Error(t, err)
	fd, ok := err.(fatalDiagnostic)
	require.True(t, ok)
	require.Equal(t, TypeError, fd.diag.Kind)
	require.Contains(t, fd.diag.Snippet, "f(1,2)")
}

func TestResolve_UndeclaredNameIsFatal(t *testing.T) {
	_, err := resolveSource(t, "int main(){ return y; }", false)
	require.Error(t, err)
	fd, ok := err.(fatalDiagnostic)
	require.True(t, ok)
	require.Equal(t, NotDefined, fd.diag.Kind)
}

func TestResolve_PrintfNestedInExpressionIsFatal(t *testing.T) {
	_, err := resolveSource(t, "int main(){ int x; x = printf(1) + 2; return 0; }", false)
	require.Error(t, err)
	fd, ok := err.(fatalDiagnostic)
	require.True(t, ok)
	require.Equal(t, TypeError, fd.diag.Kind)
}

func TestResolve_PrintfAsStatementIsAccepted(t *testing.T) {
	_, err := resolveSource(t, "int main(){ printf(1); return 0; }", false)
	require.NoError(t, err)
}

func TestResolve_ScanfRequiresIdentifierArgument(t *testing.T) {
	_, err := resolveSource(t, "int main(){ scanf(1); return 0; }", false)
	require.Error(t, err)
	fd, ok := err.(fatalDiagnostic)
	require.True(t, ok)
	require.Equal(t, TypeError, fd.diag.Kind)
}

func TestResolve_WarningsAsErrorsPromotesWarning(t *testing.T) {
	_, err := resolveSource(t, "float x; int main(){ x = 2; return 0; }", true)
	require.Error(t, err)
	fd, ok := err.(fatalDiagnostic)
	require.True(t, ok)
	require.Equal(t, ImplicitTypeCasting, fd.diag.Kind)
}

func TestResolve_ShadowingUsesMostRecentDeclaration(t *testing.T) {
	src := `int x;
		int main() {
			int x;
			x = 5;
			return x;
		}`
	warnings, err := resolveSource(t, src, false)
	require.NoError(t, err)
	require.Empty(t, warnings)
}
