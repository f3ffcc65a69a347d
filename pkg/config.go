package pkg

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	// ssm parameter names holding the bucket and the object key
	BucketParameter     string        `split_words:"true" default:"dragon_data_bucket_name"`
	KeyParameter        string        `split_words:"true" default:"dragon_data_file_name"`
	ParameterDecryption bool          `split_words:"true" default:"false"`
	ParameterCacheTTL   time.Duration `split_words:"true" default:"0s"`

	DragonNameField string `split_words:"true" default:"family_str"`
	RequestProgress bool   `split_words:"true" default:"false"`
	LegacyErrors    bool   `split_words:"true" default:"false"`

	AWSRegion string `envconfig:"AWS_REGION"`
	Endpoint  string
	AccessKey string `split_words:"true"`
	SecretKey string `split_words:"true"`

	LogLevel string `split_words:"true" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"false"`
	LogColor bool   `split_words:"true" default:"false"`
}

func LoadConfig() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}
	if c.BucketParameter == "" || c.KeyParameter == "" {
		return nil, errors.New("bucket and key parameter names must not be empty")
	}
	if c.ParameterCacheTTL < 0 {
		return nil, errors.Errorf("invalid parameter cache ttl: %s", c.ParameterCacheTTL)
	}
	return c, nil
}
