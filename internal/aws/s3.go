// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jcheck/jcheck/internal/log"
)

// Scheme prefixes every S3 document location.
const Scheme = "s3://"

// ErrBadURI is returned for locations that are not s3://bucket/key.
var ErrBadURI = errors.New("invalid s3 uri")

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded. Without options the shell's
// credential chain (AWS_PROFILE, ~/.aws/config, env, IMDS) applies.
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// LoadAWSConfig loads AWS SDK v2 config with the given overrides.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("aws opts: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// NewS3 constructs an S3 client from cfg.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithEndpoint points the client at an S3-compatible store (minio,
// localstack) using path-style addressing. An empty url is a no-op.
func WithEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if endpoint == "" {
			return
		}
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}

// GetObjectAPI is the slice of the S3 client Fetch needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Object addresses a single, optionally versioned, S3 object.
type Object struct {
	Bucket    string
	Key       string
	VersionID string
}

// IsURI reports whether location uses the s3:// scheme.
func IsURI(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseURI parses s3://bucket/key[?versionId=v].
func ParseURI(location string) (Object, error) {
	if !IsURI(location) {
		return Object{}, fmt.Errorf("%w: %q", ErrBadURI, location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return Object{}, fmt.Errorf("%w: %v", ErrBadURI, err)
	}

	obj := Object{
		Bucket:    u.Host,
		Key:       strings.TrimPrefix(u.Path, "/"),
		VersionID: u.Query().Get("versionId"),
	}
	if obj.Bucket == "" || obj.Key == "" {
		return Object{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrBadURI, location)
	}
	return obj, nil
}

// String renders the object back as a URI.
func (o Object) String() string {
	s := Scheme + o.Bucket + "/" + o.Key
	if o.VersionID != "" {
		s += "?versionId=" + url.QueryEscape(o.VersionID)
	}
	return s
}

// Fetch reads the whole object body.
func Fetch(ctx context.Context, client GetObjectAPI, obj Object) ([]byte, error) {
	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(obj.Bucket),
		Key:    awsv2.String(obj.Key),
	}
	if obj.VersionID != "" {
		in.VersionId = awsv2.String(obj.VersionID)
	}

	log.Debugf("s3 get: %s", obj)
	out, err := client.GetObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", obj, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", obj, err)
	}
	return body, nil
}
