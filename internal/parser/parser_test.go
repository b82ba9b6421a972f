package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hdldoc/govhdl/internal/lexer"
	"github.com/hdldoc/govhdl/vhdl"
)

func parse(t *testing.T, source string) []vhdl.Object {
	t.Helper()
	p, err := New(nil)
	require.NoError(t, err)
	objects, err := p.Parse(source)
	require.NoError(t, err)
	return objects
}

func TestOperatorFunction(t *testing.T) {
	objects := parse(t, `function "+" (l : integer; r : integer) return integer;`)
	require.Len(t, objects, 1)

	fn, ok := objects[0].(*vhdl.Function)
	require.True(t, ok)
	require.Equal(t, `"+"`, fn.Name())
	require.Equal(t, "integer", fn.ReturnType())

	params := fn.Parameters()
	require.Len(t, params, 2)
	require.Equal(t, "l", params[0].Name)
	require.Equal(t, vhdl.ModeUnspecified, params[0].Mode)
	require.Equal(t, "integer", params[0].DataType)
	require.Equal(t, "r", params[1].Name)
	require.Equal(t, "integer", params[1].DataType)
}

func TestAdderComponent(t *testing.T) {
	objects := parse(t, `
component adder is
  generic ( WIDTH : integer := 8 );
  port ( a : in std_logic_vector(WIDTH-1 downto 0);
         b : in std_logic_vector(WIDTH-1 downto 0);
         sum : out std_logic_vector(WIDTH-1 downto 0) );
end component;
`)
	require.Len(t, objects, 1)

	comp, ok := objects[0].(*vhdl.Component)
	require.True(t, ok)
	require.Equal(t, "adder", comp.Name())

	generics := comp.Generics()
	require.Len(t, generics, 1)
	require.Equal(t, "WIDTH", generics[0].Name)
	require.Equal(t, vhdl.ModeIn, generics[0].Mode)
	require.Equal(t, "integer", generics[0].DataType)
	require.Equal(t, "8", generics[0].Default)

	ports := comp.Ports()
	require.Len(t, ports, 3)
	wantModes := []vhdl.Mode{vhdl.ModeIn, vhdl.ModeIn, vhdl.ModeOut}
	wantNames := []string{"a", "b", "sum"}
	for i, p := range ports {
		require.Equal(t, wantNames[i], p.Name)
		require.Equal(t, wantModes[i], p.Mode)
		require.Equal(t, "std_logic_vector(WIDTH-1 downto 0)", p.DataType)
	}
}

func TestParameterGroupBackfill(t *testing.T) {
	objects := parse(t, `procedure init (a, b : in integer; c : out bit; d : inout std_logic);`)
	require.Len(t, objects, 1)

	proc := objects[0].(*vhdl.Procedure)
	params := proc.Parameters()
	require.Len(t, params, 4)

	require.Equal(t, "a", params[0].Name)
	require.Equal(t, vhdl.ModeIn, params[0].Mode)
	require.Equal(t, "integer", params[0].DataType)

	require.Equal(t, "b", params[1].Name)
	require.Equal(t, vhdl.ModeIn, params[1].Mode)
	require.Equal(t, "integer", params[1].DataType)

	require.Equal(t, "c", params[2].Name)
	require.Equal(t, vhdl.ModeOut, params[2].Mode)
	require.Equal(t, "bit", params[2].DataType)

	require.Equal(t, "d", params[3].Name)
	require.Equal(t, vhdl.ModeInout, params[3].Mode)
	require.Equal(t, "std_logic", params[3].DataType)
}

func TestParameterDefault(t *testing.T) {
	objects := parse(t, `function clamp (n : integer := 8) return integer;`)
	fn := objects[0].(*vhdl.Function)
	params := fn.Parameters()
	require.Len(t, params, 1)
	require.Equal(t, "8", params[0].Default)
}

func TestParameterClassPrefix(t *testing.T) {
	objects := parse(t, `procedure load (signal s : in bit; variable v : out integer);`)
	proc := objects[0].(*vhdl.Procedure)
	params := proc.Parameters()
	require.Len(t, params, 2)
	require.Equal(t, "s", params[0].Name)
	require.Equal(t, "v", params[1].Name)
}

func TestSimpleFunction(t *testing.T) {
	objects := parse(t, `function now return time;`)
	fn := objects[0].(*vhdl.Function)
	require.Equal(t, "now", fn.Name())
	require.Empty(t, fn.Parameters())
	require.Equal(t, "time", fn.ReturnType())
}

func TestFunctionBodyNotEmitted(t *testing.T) {
	// A subprogram definition (ending in "is") is a body, not a
	// declaration, and produces no object.
	objects := parse(t, `
function double (x : integer) return integer is
begin
  return x + x;
end function;
`)
	require.Empty(t, objects)
}

func TestPackageDeclarations(t *testing.T) {
	objects := parse(t, `
package util is
  subtype word is std_logic_vector(15 downto 0);
  constant DEPTH : integer := 4;
  function parity (v : word) return bit;
end package;
`)
	require.Len(t, objects, 4)

	pkg := objects[0].(*vhdl.Package)
	require.Equal(t, "util", pkg.Name())

	sub := objects[1].(*vhdl.Subtype)
	require.Equal(t, "word", sub.Name())
	require.Equal(t, "std_logic_vector", sub.BaseType())

	con := objects[2].(*vhdl.Constant)
	require.Equal(t, "DEPTH", con.Name())
	require.Equal(t, "integer", con.BaseType())

	fn := objects[3].(*vhdl.Function)
	require.Equal(t, "parity", fn.Name())
}

func TestTypeClassification(t *testing.T) {
	objects := parse(t, `
package p is
  type t1 is array (0 to 3) of bit;
  type t2 is file of character;
  type t3 is access integer;
  type t4 is record
    f : bit;
  end record;
  type t5 is range 0 to 7;
  type t6 is (red, green, blue);
  type t7 is;
end package;
`)
	require.Len(t, objects, 8)

	want := []struct {
		name  string
		class vhdl.TypeClass
	}{
		{"t1", vhdl.ClassArray},
		{"t2", vhdl.ClassFile},
		{"t3", vhdl.ClassAccess},
		{"t4", vhdl.ClassRecord},
		{"t5", vhdl.ClassRange},
		{"t6", vhdl.ClassEnum},
		{"t7", vhdl.ClassIncomplete},
	}
	for i, w := range want {
		typ, ok := objects[i+1].(*vhdl.Type)
		require.True(t, ok, "object %d", i+1)
		require.Equal(t, w.name, typ.Name())
		require.Equal(t, w.class, typ.Class(), w.name)
	}
}

func TestMetacommentAttachesToNextObject(t *testing.T) {
	objects := parse(t, `
package p is
  --# Computes the parity bit.
  function parity (v : bit_vector) return bit;
end package;
`)
	require.Len(t, objects, 2)
	fn := objects[1].(*vhdl.Function)
	require.Equal(t, []string{" Computes the parity bit."}, fn.Desc())
}

func TestMetacommentAttachesToPort(t *testing.T) {
	objects := parse(t, `
component reg is
  port ( clk : in std_logic; --# system clock
         rst : in std_logic );
end component;
`)
	comp := objects[0].(*vhdl.Component)
	ports := comp.Ports()
	require.Len(t, ports, 2)
	require.Equal(t, " system clock", ports[0].Desc)
	require.Empty(t, ports[1].Desc)
	require.Empty(t, comp.Desc())
}

func TestMetacommentAttachesToComponent(t *testing.T) {
	objects := parse(t, `
package p is
  --# Synchronous register.
  component reg is
    port ( d : in bit; q : out bit );
  end component;
end package;
`)
	comp := objects[1].(*vhdl.Component)
	require.Equal(t, []string{" Synchronous register."}, comp.Desc())
}

func TestSectionMarkers(t *testing.T) {
	objects := parse(t, `
component dut is
  port (
    --# {{clocks}}
    clk : in std_logic;
    rst : in std_logic;
    --# {{data}}
    d : in bit;
    q : out bit );
end component;
`)
	comp := objects[0].(*vhdl.Component)
	require.Len(t, comp.Ports(), 4)
	require.Equal(t, map[int]string{0: "clocks", 2: "data"}, comp.Sections())
}

func TestArrayRangeNested(t *testing.T) {
	objects := parse(t, `
component mem is
  port ( d : in std_logic_vector( ((N+1)*(M-2)) - 1 downto f(0) ) );
end component;
`)
	comp := objects[0].(*vhdl.Component)
	ports := comp.Ports()
	require.Len(t, ports, 1)
	require.Equal(t, "std_logic_vector( ((N+1)*(M-2)) - 1 downto f(0) )", ports[0].DataType)
}

func TestGenericGroupDefault(t *testing.T) {
	objects := parse(t, `
component sizer is
  generic ( W, H : natural := 4 );
  port ( q : out bit );
end component;
`)
	comp := objects[0].(*vhdl.Component)
	generics := comp.Generics()
	require.Len(t, generics, 2)
	for _, g := range generics {
		require.Equal(t, vhdl.ModeIn, g.Mode)
		require.Equal(t, "natural", g.DataType)
		require.Equal(t, "4", g.Default)
	}
}

func TestCaseInsensitiveKeywords(t *testing.T) {
	objects := parse(t, `FUNCTION Add (A : INTEGER) RETURN INTEGER;`)
	require.Len(t, objects, 1)
	fn := objects[0].(*vhdl.Function)
	require.Equal(t, "Add", fn.Name())
	require.Equal(t, "INTEGER", fn.ReturnType())
	params := fn.Parameters()
	require.Len(t, params, 1)
	require.Equal(t, "INTEGER", params[0].DataType)
}

func TestRealisticSourceFile(t *testing.T) {
	objects := parse(t, `
library ieee;
use ieee.std_logic_1164.all;
use ieee.numeric_std.all;

-- A small synchronous FIFO.
entity fifo is
  generic ( DEPTH : positive := 16 );
  port ( clk : in std_logic );
end entity;

package fifo_pkg is

  constant DATA_WIDTH : integer := 8;

  component fifo is
    generic ( DEPTH : positive := 16 );
    port (
      clk   : in std_logic;
      wr_en : in std_logic;
      din   : in std_logic_vector(DATA_WIDTH-1 downto 0);
      dout  : out std_logic_vector(DATA_WIDTH-1 downto 0) );
  end component;

end package;

architecture rtl of fifo is
begin
end architecture;
`)
	require.Len(t, objects, 3)
	require.Equal(t, vhdl.KindConstant, objects[1].Kind())

	comp, ok := objects[2].(*vhdl.Component)
	require.True(t, ok)
	require.Equal(t, "fifo", comp.Name())
	require.Len(t, comp.Generics(), 1)
	require.Len(t, comp.Ports(), 4)
}

func TestObjectsInSourceOrder(t *testing.T) {
	objects := parse(t, `
package p is
  constant A : integer := 1;
  function f return bit;
  constant B : integer := 2;
end package;
`)
	require.Len(t, objects, 4)
	names := []string{"p", "A", "f", "B"}
	for i, o := range objects {
		require.Equal(t, names[i], o.Name())
	}
}

func TestContractViolationEndSubprogram(t *testing.T) {
	var st buildState
	_, err := st.apply("", lexer.Token{Action: actEndSubprogram})
	var cerr *ContractError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, actEndSubprogram, cerr.Action)
}

func TestContractViolationUnknownAction(t *testing.T) {
	var st buildState
	_, err := st.apply("", lexer.Token{Action: "bogus"})
	var cerr *ContractError
	require.ErrorAs(t, err, &cerr)
}

func TestContractViolationArrayRangeEnd(t *testing.T) {
	var st buildState
	_, err := st.apply("", lexer.Token{Action: actArrayRangeEnd})
	var cerr *ContractError
	require.ErrorAs(t, err, &cerr)
}
