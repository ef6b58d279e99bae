package radius

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	radmetrics "github.com/dantte-lp/goradius/internal/metrics"
)

// EncodeJob is one independent (buffer, packet, cursor) unit of work for
// EncodeBatch. Jobs share no mutable state with each other — the only
// process-wide state the encoder touches is the Tunnel-Password salt
// counter in crypto.go, which is already atomic
type EncodeJob struct {
	Out    []byte
	Pkt    *PacketCtx
	Cursor *AVP
}

// EncodeResult is one job's outcome. Remaining is nil when Cursor's list
// was fully encoded; otherwise it is the AVP the job's buffer ran out of
// room for
type EncodeResult struct {
	Written   int
	Remaining *AVP
	Err       error
}

// EncodeBatch runs EncodePair to completion for each job concurrently,
// demonstrating that independent (out, cursor) pairs can be encoded
// concurrently with no shared cursor: errgroup.Group fans the jobs out
// across GOMAXPROCS goroutines, and a hard error from any job cancels ctx
// for the rest. If collector is non-nil, the batch's total wall-clock
// duration is observed once the whole group completes.
func EncodeBatch(ctx context.Context, jobs []EncodeJob, collector *radmetrics.Collector) ([]EncodeResult, error) {
	start := time.Now()
	results := make([]EncodeResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = EncodeResult{Err: err}
				return err
			}

			written, remaining, err := encodeAll(job.Out, job.Pkt, job.Cursor)
			results[i] = EncodeResult{Written: written, Remaining: remaining, Err: err}
			return err
		})
	}

	err := g.Wait()
	if collector != nil {
		collector.ObserveBatchDuration(time.Since(start).Seconds())
	}
	if err != nil {
		return results, err
	}
	return results, nil
}

// encodeAll drains cursor by repeatedly calling EncodePair until the list
// is exhausted or the buffer can't fit the next attribute.
func encodeAll(out []byte, pkt *PacketCtx, cursor *AVP) (int, *AVP, error) {
	pos := 0
	for cursor != nil {
		n, next, err := EncodePair(out[pos:], pkt, cursor)
		if err != nil {
			return pos, cursor, err
		}
		if n == 0 {
			if next != cursor { // ValueIgnored: skipped, cursor advanced.
				cursor = next
				continue
			}
			return pos, cursor, nil // NoRoom: buffer exhausted.
		}
		pos += n
		cursor = next
	}
	return pos, nil, nil
}
