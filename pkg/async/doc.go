// Package async provides simple, generic helpers for running computations asynchronously and
// waiting for their completion.
//
// The package is centred around the generic type Future that represents the eventual result of an
// asynchronous operation. A Future can be obtained by calling Async, which starts the supplied
// function in its own goroutine and immediately returns a *Future instance. The caller can then
// wait for completion with Await or block with a timeout using AwaitWithTimeout.
//
// Gather is the join point for many futures: it waits for all of them and reports every
// result and every error. Semaphore limits how many computations hold a slot at the same time.
//
// # Usage
//
//	sem := async.NewSemaphore(8)
//	futures := make([]*async.Future[int], 0, len(jobs))
//	for _, job := range jobs {
//		futures = append(futures, async.Async(ctx, job, func(ctx context.Context, j Job) (int, error) {
//			if err := sem.Acquire(ctx); err != nil {
//				return 0, err
//			}
//			defer sem.Release()
//			return j.Run(ctx)
//		}))
//	}
//	results, errs := async.Gather(futures...)
//
// # Error Handling
//
// Functions return the error produced by the user callback, the context error when the context
// was canceled before the callback started, or ErrTimeout from AwaitWithTimeout.
package async
