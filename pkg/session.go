package pkg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewAWSConfig loads the default sdk config, overriding region and
// credentials when they are configured explicitly.
func NewAWSConfig(ctx context.Context, c *Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if c.AWSRegion != "" {
		opts = append(opts, config.WithRegion(c.AWSRegion))
	}
	if c.AccessKey != "" && c.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "load aws config")
	}
	logrus.WithField("region", cfg.Region).WithField("endpoint", c.Endpoint).Debug("aws config loaded")
	return cfg, nil
}

func newS3Client(cfg aws.Config, c *Config) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
}

func newSSMClient(cfg aws.Config, c *Config) *ssm.Client {
	return ssm.NewFromConfig(cfg, func(o *ssm.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})
}

// NewHandlerFromConfig builds the sdk clients once and wires them into a
// Handler. Lambda reuses the result across invocations.
func NewHandlerFromConfig(ctx context.Context, c *Config) (*Handler, error) {
	cfg, err := NewAWSConfig(ctx, c)
	if err != nil {
		return nil, err
	}
	params := NewParameterStore(newSSMClient(cfg, c), c.ParameterDecryption, c.ParameterCacheTTL)
	selector := NewS3Selector(newS3Client(cfg, c))
	return NewHandler(c, params, selector), nil
}
