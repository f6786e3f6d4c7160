// Package task provides Task, a completion source that backs lazy
// pipelines with asynchronous work.
//
// A Task is completed exactly once, either by hand with Complete or Fail,
// or by Go, which runs a producer function on its own goroutine.
// Continuations registered with OnReady fire in registration order on the
// goroutine that completes the task.
//
//	t := task.Go(ctx, func(ctx context.Context) (maybe.Maybe[User], error) {
//	    return repo.Find(ctx, id)
//	})
//	name, _ := lazy.Map(t.Lazy(), func(u User) string { return u.Name })
//
// A failed producer completes with None. The error is kept in Err and
// logged under the task's id unless Config.SilenceFailures is set.
package task
