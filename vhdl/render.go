package vhdl

import (
	"fmt"
	"strings"
)

// String renders the parameter in declaration form:
// "name : [mode ]type[ := default]".
func (p Parameter) String() string {
	var s string
	if p.Mode != ModeUnspecified {
		s = fmt.Sprintf("%s : %s %s", p.Name, p.Mode, p.DataType)
	} else {
		s = fmt.Sprintf("%s : %s", p.Name, p.DataType)
	}
	if p.Default != "" {
		s = fmt.Sprintf("%s := %s", s, p.Default)
	}
	return s
}

func parameterList(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, "; ")
}

func dataTypeList(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.DataType
	}
	return strings.Join(parts, ",")
}

// Prototype renders a canonical one-line declaration.
func (f *Function) Prototype() string {
	if len(f.params) > 0 {
		return fmt.Sprintf("function %s(%s) return %s;", f.name, parameterList(f.params), f.returnType)
	}
	return fmt.Sprintf("function %s return %s;", f.name, f.returnType)
}

// Prototype renders a canonical one-line declaration.
func (p *Procedure) Prototype() string {
	return fmt.Sprintf("procedure %s(%s);", p.name, parameterList(p.params))
}

// Signature renders a compact overload-disambiguation key built from the
// parameter data types only. An empty fullname uses the declared name.
func (f *Function) Signature(fullname string) string {
	if fullname == "" {
		fullname = f.name
	}
	return fmt.Sprintf("%s[%s return %s]", fullname, dataTypeList(f.params), f.returnType)
}

// Signature renders a compact overload-disambiguation key built from the
// parameter data types only. An empty fullname uses the declared name.
func (p *Procedure) Signature(fullname string) string {
	if fullname == "" {
		fullname = p.name
	}
	return fmt.Sprintf("%s[%s]", fullname, dataTypeList(p.params))
}
