// Package dsl offers a fluent builder for constructing form definition
// trees in Go code, as an alternative to JSON or YAML documents. It is
// the natural way to assemble definitions in tests and embedded use:
//
//	root := dsl.Step("application").Label("Application").Children(
//		dsl.Select("status", "single", "married").Required(),
//		dsl.Text("partner").VisibleWhen(
//			dsl.All(dsl.When("Equals", "status").Value("married")),
//		),
//	).Build()
package dsl
