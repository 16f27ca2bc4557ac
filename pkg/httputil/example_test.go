package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/lyricspiral/pkg/httputil"
)

func ExampleRetry() {
	attempt := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempt++
		if attempt == 1 {
			return httputil.Retryable(errors.New("upstream returned 503"))
		}
		return nil
	})
	fmt.Println("attempts:", attempt, "err:", err)
	// Output:
	// attempts: 2 err: <nil>
}
