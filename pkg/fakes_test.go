package pkg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmTypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/mock"
)

type mockParameterAPI struct {
	mock.Mock
}

func (m *mockParameterAPI) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Name))
	out, _ := args.Get(0).(*ssm.GetParameterOutput)
	return out, args.Error(1)
}

func parameterOutput(value string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &ssmTypes.Parameter{Value: aws.String(value)}}
}

type mockSelector struct {
	mock.Mock
}

func (m *mockSelector) SelectObject(ctx context.Context, input *s3.SelectObjectContentInput) (EventStream, error) {
	args := m.Called(ctx, input)
	stream, _ := args.Get(0).(EventStream)
	return stream, args.Error(1)
}

type fakeReader struct {
	events chan types.SelectObjectContentEventStream
	err    error
	closed bool
}

func (r *fakeReader) Events() <-chan types.SelectObjectContentEventStream {
	return r.events
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func (r *fakeReader) Err() error {
	return r.err
}

// newFakeStream returns an sdk event stream that yields events and then
// closes, reporting err afterwards.
func newFakeStream(err error, events ...types.SelectObjectContentEventStream) (*s3.SelectObjectContentEventStream, *fakeReader) {
	ch := make(chan types.SelectObjectContentEventStream, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	reader := &fakeReader{events: ch, err: err}
	stream := s3.NewSelectObjectContentEventStream(func(es *s3.SelectObjectContentEventStream) {
		es.Reader = reader
	})
	return stream, reader
}

func recordsEvent(payload string) types.SelectObjectContentEventStream {
	return &types.SelectObjectContentEventStreamMemberRecords{
		Value: types.RecordsEvent{Payload: []byte(payload)},
	}
}

func statsEvent(scanned, processed, returned int64) types.SelectObjectContentEventStream {
	return &types.SelectObjectContentEventStreamMemberStats{
		Value: types.StatsEvent{Details: &types.Stats{
			BytesScanned:   aws.Int64(scanned),
			BytesProcessed: aws.Int64(processed),
			BytesReturned:  aws.Int64(returned),
		}},
	}
}

func progressEvent(scanned int64) types.SelectObjectContentEventStream {
	return &types.SelectObjectContentEventStreamMemberProgress{
		Value: types.ProgressEvent{Details: &types.Progress{BytesScanned: aws.Int64(scanned)}},
	}
}

func contEvent() types.SelectObjectContentEventStream {
	return &types.SelectObjectContentEventStreamMemberCont{}
}

func endEvent() types.SelectObjectContentEventStream {
	return &types.SelectObjectContentEventStreamMemberEnd{}
}

// recordingObserver counts observer callbacks.
type recordingObserver struct {
	progress []types.Progress
	stats    []types.Stats
	ends     int
}

func (o *recordingObserver) OnProgress(progress types.Progress) {
	o.progress = append(o.progress, progress)
}

func (o *recordingObserver) OnStats(stats types.Stats) {
	o.stats = append(o.stats, stats)
}

func (o *recordingObserver) OnEnd(*SelectResult) {
	o.ends++
}
