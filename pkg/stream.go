package pkg

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

// SelectObserver receives the non-record events of a select stream.
// OnProgress and OnStats are called zero or more times while the stream is
// read. OnEnd is called exactly once, after the End event was seen and the
// stream closed cleanly. If DrainStream returns an error OnEnd is not called.
type SelectObserver interface {
	OnProgress(progress types.Progress)
	OnStats(stats types.Stats)
	OnEnd(result *SelectResult)
}

type SelectResult struct {
	Records        string
	BytesScanned   int64
	BytesProcessed int64
	BytesReturned  int64
}

// DrainStream reads the stream until it closes and concatenates the record
// payloads in arrival order. The stream is always closed.
func DrainStream(ctx context.Context, stream EventStream, observer SelectObserver) (*SelectResult, error) {
	defer stream.Close()
	if observer == nil {
		observer = nopObserver{}
	}

	var buf bytes.Buffer
	result := &SelectResult{}
	ended := false
	events := stream.Events()
loop:
	for {
		select {
		case <-ctx.Done():
			return nil, &StreamError{Err: ctx.Err()}
		case event, ok := <-events:
			if !ok {
				break loop
			}
			switch v := event.(type) {
			case *types.SelectObjectContentEventStreamMemberRecords:
				buf.Write(v.Value.Payload)
			case *types.SelectObjectContentEventStreamMemberStats:
				if v.Value.Details != nil {
					result.BytesScanned = aws.ToInt64(v.Value.Details.BytesScanned)
					result.BytesProcessed = aws.ToInt64(v.Value.Details.BytesProcessed)
					result.BytesReturned = aws.ToInt64(v.Value.Details.BytesReturned)
					observer.OnStats(*v.Value.Details)
				}
			case *types.SelectObjectContentEventStreamMemberProgress:
				if v.Value.Details != nil {
					observer.OnProgress(*v.Value.Details)
				}
			case *types.SelectObjectContentEventStreamMemberCont:
				// keep-alive
			case *types.SelectObjectContentEventStreamMemberEnd:
				ended = true
			default:
				logrus.WithField("event", event).Warn("unknown select event")
			}
		}
	}
	if err := stream.Err(); err != nil {
		return nil, &StreamError{Err: err}
	}
	if !ended {
		return nil, &StreamError{Err: ErrIncompleteStream}
	}
	result.Records = buf.String()
	observer.OnEnd(result)
	return result, nil
}

type nopObserver struct{}

func (nopObserver) OnProgress(types.Progress) {}
func (nopObserver) OnStats(types.Stats)       {}
func (nopObserver) OnEnd(*SelectResult)       {}

// LogObserver reports select events through logrus.
type LogObserver struct {
	Entry *logrus.Entry
}

func (o LogObserver) entry() *logrus.Entry {
	if o.Entry == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return o.Entry
}

func (o LogObserver) OnProgress(progress types.Progress) {
	o.entry().
		WithField("bytesScanned", aws.ToInt64(progress.BytesScanned)).
		WithField("bytesProcessed", aws.ToInt64(progress.BytesProcessed)).
		Debug("select progress")
}

func (o LogObserver) OnStats(stats types.Stats) {
	o.entry().
		WithField("bytesScanned", aws.ToInt64(stats.BytesScanned)).
		WithField("bytesProcessed", aws.ToInt64(stats.BytesProcessed)).
		WithField("bytesReturned", aws.ToInt64(stats.BytesReturned)).
		Info("select stats received")
}

func (o LogObserver) OnEnd(result *SelectResult) {
	o.entry().WithField("records", len(result.Records)).Info("select complete")
}
