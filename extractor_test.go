package govhdl

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	objects, err := Parse(`function parity (v : bit_vector) return bit;`)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	fn, ok := objects[0].(*Function)
	require.True(t, ok)
	require.Equal(t, "parity", fn.Name())
}

func TestParseFileLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.vhd")
	content := []byte("-- caf\xe9\nfunction f return bit;\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	objects, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Equal(t, "f", objects[0].Name())
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.vhd"))
	require.Error(t, err)
}

func TestExtractObjectsFromFileMemoized(t *testing.T) {
	ex := MustNew()
	path := writeFile(t, t.TempDir(), "a.vhd", "function f return bit;\n")

	objects, err := ex.ExtractObjectsFromFile(path)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	// Rewriting the file must not change the cached result.
	require.NoError(t, os.WriteFile(path,
		[]byte("function f return bit;\nfunction g return bit;\n"), 0o644))

	objects, err = ex.ExtractObjectsFromFile(path)
	require.NoError(t, err)
	require.Len(t, objects, 1)
}

func TestExtractComponents(t *testing.T) {
	ex := MustNew()
	comps, err := ex.ExtractComponents(`
package p is
  constant W : integer := 8;
  component reg is
    port ( d : in bit; q : out bit );
  end component;
end package;
`)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	require.Equal(t, "reg", comps[0].Name())
}

func TestDefaultArrayTypes(t *testing.T) {
	ex := MustNew()
	require.True(t, ex.IsArrayType("std_logic_vector"))
	require.True(t, ex.IsArrayType("UNSIGNED"))
	require.True(t, ex.IsArrayType("bit_vector"))
	require.False(t, ex.IsArrayType("integer"))
}

func TestIsArrayTypeIgnoresRangeSuffix(t *testing.T) {
	ex := MustNew()
	require.True(t, ex.IsArrayType("std_logic_vector(7 downto 0)"))
	require.True(t, ex.IsArrayType("Signed(WIDTH-1 downto 0)"))
}

func TestWithArrayTypes(t *testing.T) {
	ex := MustNew(WithArrayTypes("Word_Array"))
	require.True(t, ex.IsArrayType("word_array"))
	require.True(t, ex.IsArrayType("WORD_ARRAY"))
}

func TestRegisterArrayTypesSubtypeChain(t *testing.T) {
	ex := MustNew()
	_, err := ex.ExtractObjects(`
package p is
  type vec8 is array (0 to 7) of bit;
  subtype halfword is vec8;
  subtype nibble is halfword;
  subtype counter is integer;
end package;
`)
	require.NoError(t, err)

	require.True(t, ex.IsArrayType("vec8"))
	require.True(t, ex.IsArrayType("halfword"))
	require.True(t, ex.IsArrayType("NIBBLE"))
	require.False(t, ex.IsArrayType("counter"))
}

func TestRegisterArrayTypesOrderDependent(t *testing.T) {
	ex := MustNew()

	// The base type is unknown when the subtype is seen.
	_, err := ex.ExtractObjects("package a is\n  subtype w is late_vec;\nend package;\n")
	require.NoError(t, err)
	_, err = ex.ExtractObjects("package b is\n  type late_vec is array (0 to 1) of bit;\nend package;\n")
	require.NoError(t, err)

	require.True(t, ex.IsArrayType("late_vec"))
	require.False(t, ex.IsArrayType("w"))
}

func TestRegisterFilesArrayTypes(t *testing.T) {
	ex := MustNew()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.vhd", "package p is\n  type my_vec is array (0 to 3) of bit;\nend package;\n")

	require.NoError(t, ex.RegisterFilesArrayTypes([]string{a}))
	require.True(t, ex.IsArrayType("my_vec"))
}

func TestRegisterSourceArrayTypes(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/types.vhd": &fstest.MapFile{
			Data: []byte("package t is\n  type word_vec is array (0 to 15) of bit;\nend package;\n"),
		},
		"lib/readme.txt": &fstest.MapFile{Data: []byte("not vhdl")},
	}
	ex := MustNew()
	require.NoError(t, ex.RegisterSourceArrayTypes(FS("lib", fsys)))
	require.True(t, ex.IsArrayType("word_vec"))
}

func TestArrayTypesSorted(t *testing.T) {
	ex := MustNew(WithArrayTypes("aa_vec"))
	names := ex.ArrayTypes()
	require.Equal(t, []string{
		"aa_vec",
		"bit_vector",
		"signed",
		"std_logic_vector",
		"std_ulogic_vector",
		"unsigned",
	}, names)
}

func TestSaveLoadArrayTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")

	ex := MustNew(WithArrayTypes("custom_vec"))
	require.NoError(t, ex.SaveArrayTypes(path))

	fresh := MustNew()
	require.False(t, fresh.IsArrayType("custom_vec"))
	require.NoError(t, fresh.LoadArrayTypes(path))
	require.True(t, fresh.IsArrayType("custom_vec"))
}

func TestLoadArrayTypesLegacyForms(t *testing.T) {
	dir := t.TempDir()
	jsonForm := writeFile(t, dir, "r1", `{"arrays": ["json_vec"]}`)
	quotedForm := writeFile(t, dir, "r2", `{'arrays': ['quoted_vec']}`)

	ex := MustNew()
	require.NoError(t, ex.LoadArrayTypes(jsonForm))
	require.NoError(t, ex.LoadArrayTypes(quotedForm))
	require.True(t, ex.IsArrayType("json_vec"))
	require.True(t, ex.IsArrayType("quoted_vec"))
}

func TestLoadArrayTypesMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken", "]]] not a registry [[[")

	ex := MustNew()
	before := ex.ArrayTypes()
	require.NoError(t, ex.LoadArrayTypes(path))
	require.Equal(t, before, ex.ArrayTypes())
}

func TestLoadArrayTypesMissing(t *testing.T) {
	ex := MustNew()
	require.Error(t, ex.LoadArrayTypes(filepath.Join(t.TempDir(), "absent")))
}
