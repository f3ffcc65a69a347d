package pkg

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmTypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_ParameterStore_Locate(t *testing.T) {
	api := &mockParameterAPI{}
	api.On("GetParameter", mock.Anything, "bucket_param").Return(parameterOutput("dragons-bucket"), nil)
	api.On("GetParameter", mock.Anything, "key_param").Return(parameterOutput("dragons.json"), nil)

	store := NewParameterStore(api, false, 0)
	location, err := store.Locate(context.Background(), "bucket_param", "key_param")
	require.NoError(t, err)
	assert.Equal(t, ObjectLocation{Bucket: "dragons-bucket", Key: "dragons.json"}, location)

	// no cache, every call reads again
	_, err = store.Locate(context.Background(), "bucket_param", "key_param")
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "GetParameter", 4)
}

func Test_ParameterStore_cache(t *testing.T) {
	api := &mockParameterAPI{}
	api.On("GetParameter", mock.Anything, "bucket_param").Return(parameterOutput("dragons-bucket"), nil)

	store := NewParameterStore(api, false, time.Minute)
	for i := 0; i < 3; i++ {
		value, err := store.Get(context.Background(), "bucket_param")
		require.NoError(t, err)
		assert.Equal(t, "dragons-bucket", value)
	}
	api.AssertNumberOfCalls(t, "GetParameter", 1)
}

func Test_ParameterStore_errors(t *testing.T) {
	notFound := &ssmTypes.ParameterNotFound{Message: new(string)}
	tests := []struct {
		name string
		out  *ssm.GetParameterOutput
		err  error
		code string
	}{
		{"api error", nil, notFound, "ParameterNotFound"},
		{"nil parameter", &ssm.GetParameterOutput{}, nil, ""},
		{"empty value", parameterOutput(""), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockParameterAPI{}
			api.On("GetParameter", mock.Anything, "bucket_param").Return(tt.out, tt.err)

			store := NewParameterStore(api, false, time.Minute)
			_, err := store.Locate(context.Background(), "bucket_param", "key_param")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParameterLookup))
			assert.Equal(t, "parameter", ErrorKind(err))
			assert.Equal(t, tt.code, APIErrorCode(err))
			var paramErr *ParameterError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, "bucket_param", paramErr.Name)
			// the key is never read once the bucket failed
			api.AssertNotCalled(t, "GetParameter", mock.Anything, "key_param")
		})
	}
}

func Test_ParameterStore_emptyName(t *testing.T) {
	api := &mockParameterAPI{}
	_, err := NewParameterStore(api, false, 0).Get(context.Background(), "")
	assert.True(t, errors.Is(err, ErrParameterLookup))
	api.AssertNotCalled(t, "GetParameter", mock.Anything, mock.Anything)
}
