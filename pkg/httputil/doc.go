// Package httputil holds the retry policy used by the lyrics catalog client.
//
// Transient failures are marked by wrapping them with [Retryable]. [Retry]
// re-runs an operation only for such errors, doubling the delay between
// attempts, and gives up early when the context is cancelled:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := http.DefaultClient.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// Defaults: 3 attempts, 1 second initial delay.
package httputil
