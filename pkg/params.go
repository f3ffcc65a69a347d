package pkg

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ParameterAPI is the subset of the ssm client used by ParameterStore.
type ParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ObjectLocation identifies the object queried by the select request.
type ObjectLocation struct {
	Bucket string
	Key    string
}

// ParameterStore reads configuration values from SSM Parameter Store. Values
// are read on every call unless a cache ttl is set.
type ParameterStore struct {
	api     ParameterAPI
	decrypt bool
	cache   *cache.Cache
}

func NewParameterStore(api ParameterAPI, decrypt bool, ttl time.Duration) *ParameterStore {
	p := &ParameterStore{api: api, decrypt: decrypt}
	if ttl > 0 {
		p.cache = cache.New(ttl, 2*ttl)
	}
	return p
}

func (p *ParameterStore) Get(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", &ParameterError{Name: name, Err: errors.New("empty parameter name")}
	}
	if p.cache != nil {
		if value, found := p.cache.Get(name); found {
			return value.(string), nil
		}
	}
	out, err := p.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(p.decrypt),
	})
	if err != nil {
		logrus.WithField("name", name).WithError(err).Error("get parameter failed")
		return "", &ParameterError{Name: name, Err: err}
	}
	if out == nil || out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		logrus.WithField("name", name).Error("parameter has no value")
		return "", &ParameterError{Name: name, Err: errors.New("parameter has no value")}
	}
	value := aws.ToString(out.Parameter.Value)
	if p.cache != nil {
		p.cache.Set(name, value, cache.DefaultExpiration)
	}
	return value, nil
}

// Locate resolves the bucket and key of the queried object, one lookup each.
func (p *ParameterStore) Locate(ctx context.Context, bucketParam, keyParam string) (ObjectLocation, error) {
	bucket, err := p.Get(ctx, bucketParam)
	if err != nil {
		return ObjectLocation{}, err
	}
	key, err := p.Get(ctx, keyParam)
	if err != nil {
		return ObjectLocation{}, err
	}
	return ObjectLocation{Bucket: bucket, Key: key}, nil
}
