package ast

// Attribute is a source-level annotation attached to a declaration, such as
// `@extern("c_name")` on a FunctionDecl. Arguments are kept as raw strings;
// interpreting them is the attaching pass's responsibility, not this
// package's.
type Attribute struct {
	base
	Name string
	Args []string
}

func (*Attribute) Kind() Kind { return KindAttribute }
func (*Attribute) isMetadata() {}
