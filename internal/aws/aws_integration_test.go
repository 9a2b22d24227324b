// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"bytes"
	"context"
	"os"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_Fetch round-trips a document through a real bucket named
// by JCHECK_S3_TEST_BUCKET. JCHECK_S3_ENDPOINT selects an S3-compatible store.
func TestIntegration_Fetch(t *testing.T) {
	bucket := os.Getenv("JCHECK_S3_TEST_BUCKET")
	if bucket == "" {
		t.Skip("JCHECK_S3_TEST_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := LoadAWSConfig(ctx)
	require.NoError(t, err)
	client := NewS3(cfg, WithEndpoint(os.Getenv("JCHECK_S3_ENDPOINT")))

	key := "jcheck-integration/doc.json"
	doc := []byte(`{"hello":"world"}`)
	put, err := client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
		Body:   bytes.NewReader(doc),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = client.DeleteObject(ctx, &s3v2.DeleteObjectInput{
			Bucket: awsv2.String(bucket),
			Key:    awsv2.String(key),
		})
	})

	obj := Object{Bucket: bucket, Key: key, VersionID: awsv2.ToString(put.VersionId)}
	got, err := Fetch(ctx, client, obj)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
