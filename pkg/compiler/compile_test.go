package compiler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile_SuccessfulProgramHasNoWarningsAndValidAssembly(t *testing.T) {
	result, err := Compile("int a; int main(){ a=1; return a; }", Options{})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
	require.Contains(t, result.Assembly, "LAB Fmain")
	require.Contains(t, result.Assembly, "LAB Fprintf")
}

func TestCompile_FatalErrorReturnsNoAssemblyButDiagnosticText(t *testing.T) {
	result, err := Compile("int main(){ return; }", Options{})
	require.Error(t, err)
	require.Empty(t, result.Assembly)

	var buf bytes.Buffer
	WriteDiagnostics(&buf, result.Warnings, err)
	require.Equal(t, "line 1: error: Type error: Should return a value\n\treturn\n", buf.String())
}

func TestCompile_WarningsAsErrorsOptionPromotesFirstWarning(t *testing.T) {
	_, err := Compile("float x; int main(){ x = 2; return 0; }", Options{WarningsAsErrors: true})
	require.Error(t, err)

	var buf bytes.Buffer
	WriteDiagnostics(&buf, nil, err)
	require.Contains(t, buf.String(), "line 1: error: Implicit type casting")
}

func TestCompile_DiagnosticWireFormatMatchesWarningThenError(t *testing.T) {
	result, err := Compile("int a[3]; int f(int x){ return x; } int main(){ a[1.5]=2; return f(1,2); }", Options{})
	require.Error(t, err)
	require.NotEmpty(t, result.Warnings)

	var buf bytes.Buffer
	WriteDiagnostics(&buf, result.Warnings, err)
	out := buf.String()
	require.Contains(t, out, "warning: Implicit type casting")
	require.Contains(t, out, "error: Type error")
	require.Contains(t, out, "f(1,2)")
}

func TestCompile_LexErrorSurfacesAsPlainError(t *testing.T) {
	_, err := Compile("int a; int main(){ a = $; return 0; }", Options{})
	require.Error(t, err)
}
