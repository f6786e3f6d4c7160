// Package resilience retries failing producers with exponential backoff.
//
//	v, err := resilience.Retry(ctx, resilience.DefaultRetryPolicy(), func(ctx context.Context) (string, error) {
//	    return client.Get(ctx, key).Result()
//	})
//
// task.Go applies the policy from task.Config.Retry to every producer.
package resilience
