// Package ast defines Lumen's abstract syntax tree: a sum-type-by-struct
// Expression hierarchy (12 variants) and Statement hierarchy (8 variants),
// plus the scalar Value cases a Literal expression (or a folded constant)
// can hold. Nodes are plain structs dispatched by a type switch in the
// parser, constant folder, and evaluator — no virtual visitor hierarchy.
package ast
