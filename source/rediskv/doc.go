// Package rediskv surfaces Redis lookups as lazy pipelines.
//
// Every lookup runs on a task, so building the pipeline never blocks.
// A missing key is None, not an error.
//
//	name := rediskv.Get(ctx, rdb, "user:42:name")
//	greeting, _ := lazy.Map(name, func(n string) string { return "hello " + n })
//	fmt.Println(greeting.Match("hello stranger"))
package rediskv
