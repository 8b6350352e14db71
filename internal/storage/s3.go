package storage

import (
	"GalleryBackend/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const s3Prefix = "images/"

var _ Store = (*S3Store)(nil)

// S3Store keeps files as objects under a fixed prefix of one bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	log    *zap.Logger
}

// NewS3Store builds a path-style client, which also works against MinIO,
// and creates the bucket when it is missing.
func NewS3Store(ctx context.Context, cfg config.S3Config, log *zap.Logger) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	s := &S3Store{client: client, bucket: cfg.BucketName, log: log}
	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *S3Store) ensureBucket(ctx context.Context, region string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	s.log.Info("Creating bucket", zap.String("bucket", s.bucket))
	in := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Save writes with If-None-Match: *, so of two writers racing for the same
// name only one succeeds and the other moves on to a suffixed name.
func (s *S3Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}
	candidate := name
	for i := 0; i < maxNameAttempts; i++ {
		err := s.put(ctx, candidate, data, true)
		if err == nil {
			return candidate, nil
		}
		if !nameTaken(err) {
			return "", err
		}
		candidate = uniqueName(name)
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", name, maxNameAttempts)
}

func (s *S3Store) Put(ctx context.Context, name string, data []byte) error {
	if !validName(name) {
		return ErrInvalidName
	}
	return s.put(ctx, name, data, false)
}

func (s *S3Store) put(ctx context.Context, name string, data []byte, exclusive bool) error {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s3Prefix + name),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if exclusive {
		in.IfNoneMatch = aws.String("*")
	}
	_, err := s.client.PutObject(ctx, in)
	if err != nil {
		if !exclusive || !nameTaken(err) {
			s.log.Error("Failed to upload file to S3", zap.String("name", name), zap.Error(err))
		}
		return err
	}
	return nil
}

// nameTaken reports whether a conditional write failed because the key
// already exists or another conditional write to it is in flight.
func nameTaken(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Prefix + name),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, ErrInvalidName
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Prefix + name),
	})
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Prefix + name),
	})
	return err
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	var names []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s3Prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s3Prefix)
			if validName(name) {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
