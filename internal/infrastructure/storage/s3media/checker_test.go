package s3media

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type fakeHead struct {
	present map[string]bool
	err     error
	keys    []string
}

func (f *fakeHead) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	if f.present[key] {
		return &s3.HeadObjectOutput{}, nil
	}
	return nil, &types.NotFound{}
}

const prefix = "https://smo-operation.s3.eu-west-2.amazonaws.com/"

func TestCheckerExists(t *testing.T) {
	api := &fakeHead{present: map[string]bool{"public/group/1/logo.png": true}}
	c := newChecker(api, "smo-operation", prefix)

	ok, err := c.Exists(context.Background(), prefix+"public/group/1/logo.png")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Exists(context.Background(), prefix+"public/group/1/missing.png")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = c.Exists(context.Background(), "https://cdn.example.com/other.png")
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, []string{"public/group/1/logo.png", "public/group/1/missing.png"}, api.keys)
}

func TestCheckerPropagatesErrors(t *testing.T) {
	c := newChecker(&fakeHead{err: errors.New("access denied")}, "smo-operation", prefix)

	_, err := c.Exists(context.Background(), prefix+"a.png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "head object a.png")
}
