// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	body string
	err  error
	got  *s3v2.GetObjectInput
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestOptions(t *testing.T) {
	var opts options
	WithProfile("ci")(&opts)
	WithRegion("us-east-1")(&opts)
	WithRegion("eu-west-1")(&opts)
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&opts)

	assert.Equal(t, "ci", opts.profile)
	assert.Equal(t, "eu-west-1", opts.region)
	require.NotNil(t, opts.retryer)
	assert.NotNil(t, opts.retryer())
}

func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("ap-southeast-1"))
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-1", cfg.Region)

	assert.IsType(t, &s3v2.Client{}, NewS3(cfg, WithEndpoint("")))
}

func TestWithEndpoint(t *testing.T) {
	var o s3v2.Options
	WithEndpoint("")(&o)
	assert.Nil(t, o.BaseEndpoint)
	assert.False(t, o.UsePathStyle)

	WithEndpoint("http://localhost:9000")(&o)
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *o.BaseEndpoint)
	assert.True(t, o.UsePathStyle)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		in      string
		want    Object
		wantErr bool
	}{
		{in: "s3://bucket/doc.json", want: Object{Bucket: "bucket", Key: "doc.json"}},
		{in: "s3://bucket/a/b/c.json", want: Object{Bucket: "bucket", Key: "a/b/c.json"}},
		{in: "s3://bucket/doc.json?versionId=abc123", want: Object{Bucket: "bucket", Key: "doc.json", VersionID: "abc123"}},
		{in: "s3://bucket/", wantErr: true},
		{in: "s3:///doc.json", wantErr: true},
		{in: "doc.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseURI(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("latest", func(t *testing.T) {
		client := &fakeS3{body: `{"a":1}`}
		got, err := Fetch(ctx, client, Object{Bucket: "b", Key: "k"})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
		assert.Equal(t, "b", *client.got.Bucket)
		assert.Equal(t, "k", *client.got.Key)
		assert.Nil(t, client.got.VersionId)
	})

	t.Run("versioned", func(t *testing.T) {
		client := &fakeS3{body: `[]`}
		_, err := Fetch(ctx, client, Object{Bucket: "b", Key: "k", VersionID: "v1"})
		require.NoError(t, err)
		require.NotNil(t, client.got.VersionId)
		assert.Equal(t, "v1", *client.got.VersionId)
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Fetch(ctx, &fakeS3{err: boom}, Object{Bucket: "b", Key: "k"})
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "s3://b/k")
	})
}
