package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVerilog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := writeVerilog(t, dir, "adder.v", `
module adder ( input [3:0] a, input [3:0] b, output [4:0] sum );
endmodule
`)

	e := New()
	modules, err := e.ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "adder", modules[0].Name)
	assert.Len(t, modules[0].Ports, 3)
}

func TestExtractFileCachesPerPath(t *testing.T) {
	dir := t.TempDir()
	path := writeVerilog(t, dir, "m.v", "module original ( input clk );\nendmodule\n")

	e := New()
	first, err := e.ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A rewrite on disk is invisible until a new Extractor is used;
	// the per-run cache is keyed by path only.
	writeVerilog(t, dir, "m.v", "module replaced ( input clk );\nendmodule\n")
	second, err := e.ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", second[0].Name)

	fresh, err := New().ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", fresh[0].Name)
}

func TestExtractFileMissing(t *testing.T) {
	_, err := New().ExtractFile(filepath.Join(t.TempDir(), "nope.v"))
	assert.Error(t, err)
}

func TestExtractFileWrapsParseErrorWithPath(t *testing.T) {
	dir := t.TempDir()
	path := writeVerilog(t, dir, "broken.v", "/* never closed")

	_, err := New().ExtractFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.v")
}

func TestExtractTextBypassesCache(t *testing.T) {
	e := New()
	a, err := e.ExtractText("module a ( input x );\nendmodule\n")
	require.NoError(t, err)
	b, err := e.ExtractText("module b ( input x );\nendmodule\n")
	require.NoError(t, err)

	assert.Equal(t, "a", a[0].Name)
	assert.Equal(t, "b", b[0].Name)
}

func TestIsVerilogFile(t *testing.T) {
	assert.True(t, IsVerilogFile("cpu.v"))
	assert.True(t, IsVerilogFile("cpu.vlog"))
	assert.True(t, IsVerilogFile("CPU.V"))
	assert.False(t, IsVerilogFile("cpu.vhdl"))
	assert.False(t, IsVerilogFile("cpu.sv"))
	assert.False(t, IsVerilogFile("cpu"))
}

func TestIsArrayType(t *testing.T) {
	assert.True(t, IsArrayType("wire [7:0]"))
	assert.True(t, IsArrayType("reg signed [15:0]"))
	assert.False(t, IsArrayType("wire"))
	assert.False(t, IsArrayType(""))
}
