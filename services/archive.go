package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// ObjectPutter is the part of the S3 client the archiver needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver keeps a JSON copy of every submitted payload in S3.
// A zero Archiver is disabled and archives nothing.
type Archiver struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

func NewArchiver(client ObjectPutter, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

func (a *Archiver) Enabled() bool {
	return a != nil && a.client != nil && a.bucket != ""
}

// Archive stores v under {prefix}/{kind}/{yyyy}/{mm}/{dd}/{id}.json and
// returns the object key. A disabled archiver returns "".
func (a *Archiver) Archive(ctx context.Context, kind, id string, v any) (string, error) {
	if !a.Enabled() {
		return "", nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s %s: %w", kind, id, err)
	}

	key := path.Join(a.prefix, kind, a.now().UTC().Format("2006/01/02"), id+".json")
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("archive %s %s: %w", kind, id, err)
	}
	log.Debug().Str("bucket", a.bucket).Str("key", key).Msg("Archived payload")
	return key, nil
}
