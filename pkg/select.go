package pkg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// EventStream is the reading side of a SelectObjectContent response.
// *s3.SelectObjectContentEventStream implements it.
type EventStream interface {
	Events() <-chan types.SelectObjectContentEventStream
	Close() error
	Err() error
}

type ObjectSelector interface {
	SelectObject(ctx context.Context, input *s3.SelectObjectContentInput) (EventStream, error)
}

// SelectAPI is the subset of the s3 client used by S3Selector.
type SelectAPI interface {
	SelectObjectContent(ctx context.Context, params *s3.SelectObjectContentInput, optFns ...func(*s3.Options)) (*s3.SelectObjectContentOutput, error)
}

type S3Selector struct {
	api SelectAPI
}

func NewS3Selector(api SelectAPI) *S3Selector {
	return &S3Selector{api: api}
}

func (s *S3Selector) SelectObject(ctx context.Context, input *s3.SelectObjectContentInput) (EventStream, error) {
	out, err := s.api.SelectObjectContent(ctx, input)
	if err != nil {
		return nil, err
	}
	stream := out.GetStream()
	if stream == nil {
		return nil, errors.New("select response has no event stream")
	}
	return stream, nil
}

// NewSelectInput builds a SQL select over an uncompressed JSON document.
func NewSelectInput(location ObjectLocation, expression string, requestProgress bool) *s3.SelectObjectContentInput {
	input := &s3.SelectObjectContentInput{
		Bucket:         aws.String(location.Bucket),
		Key:            aws.String(location.Key),
		Expression:     aws.String(expression),
		ExpressionType: types.ExpressionTypeSql,
		InputSerialization: &types.InputSerialization{
			JSON:            &types.JSONInput{Type: types.JSONTypeDocument},
			CompressionType: types.CompressionTypeNone,
		},
		OutputSerialization: &types.OutputSerialization{
			JSON: &types.JSONOutput{},
		},
	}
	if requestProgress {
		input.RequestProgress = &types.RequestProgress{Enabled: aws.Bool(true)}
	}
	return input
}

// SelectRecords runs expression against the object at location and drains
// the whole result.
func SelectRecords(
	ctx context.Context, selector ObjectSelector, location ObjectLocation,
	expression string, requestProgress bool, observer SelectObserver,
) (*SelectResult, error) {
	log := logrus.WithField("bucket", location.Bucket).WithField("key", location.Key)
	log.WithField("expression", expression).Info("select object content")

	input := NewSelectInput(location, expression, requestProgress)
	stream, err := selector.SelectObject(ctx, input)
	if err != nil {
		log.WithError(err).Error("select object content failed")
		return nil, &SelectError{Bucket: location.Bucket, Key: location.Key, Err: err}
	}
	result, err := DrainStream(ctx, stream, observer)
	if err != nil {
		log.WithError(err).Error("drain select stream failed")
		return nil, err
	}
	return result, nil
}
