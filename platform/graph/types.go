package graph

// Kind identifies the value type stored by a plug, as a string.
type Kind string

// The plug value kinds supported by typed storage.
const (
	BOOL   Kind = "bool"
	INT    Kind = "int"
	FLOAT  Kind = "float"
	STRING Kind = "string"
	LIST   Kind = "list"
	MAP    Kind = "map"
)

// Direction reports whether a plug receives or produces values.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)
