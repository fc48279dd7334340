package rewrite

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// RewriteAll rewrites texts in batches of r.BatchSize(), running up to
// concurrency requests at once. The first failing batch cancels the rest.
// Results come back in input order.
func RewriteAll(
	ctx context.Context,
	r Rewriter,
	texts []string,
	concurrency int,
) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	batchSize := r.BatchSize()
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var batches [][]Item
	for i := 0; i < len(texts); i += batchSize {
		end := min(i+batchSize, len(texts))
		batch := make([]Item, 0, end-i)
		for j := i; j < end; j++ {
			batch = append(batch, Item{Index: j, Text: texts[j]})
		}
		batches = append(batches, batch)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []Result
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					results, err := r.Rewrite(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	out := make([]string, len(texts))
	seen := make([]bool, len(texts))
	var firstErr error
	for result := range resultChan {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf(
					"batch %d failed: %w",
					result.Index,
					result.Error,
				)
				cancel()
			}
			continue
		}

		for _, res := range result.Results {
			if res.Index < 0 || res.Index >= len(texts) {
				continue
			}
			out[res.Index] = strings.ReplaceAll(res.Text, "\\N", "\n")
			seen[res.Index] = true
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	// cancellation from the caller can stop the queue before every batch ran
	if err := ctx.Err(); err != nil && !allSeen(seen) {
		return nil, err
	}

	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("no result for text %d", i)
		}
	}

	return out, nil
}

func allSeen(seen []bool) bool {
	for _, ok := range seen {
		if !ok {
			return false
		}
	}
	return true
}
