package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/logger"
)

type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, for MinIO or R2
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
	Prefix          string
}

type repository struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewClient builds an S3 client. Static keys are used when given, otherwise the default
// AWS credential chain applies.
func NewClient(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*s3.Client, error) {
	const op = "archive.NewClient"

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	opts := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)

	return s3.NewFromConfig(awsCfg, opts...), nil
}

func NewRepository(client *s3.Client, cfg Config) *repository {
	return &repository{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
	}
}

// SaveReport uploads a rendered report and returns its object key. Keys are grouped by car
// and prefixed with the upload time so repeated exports never overwrite each other.
func (r *repository) SaveReport(ctx context.Context, carID int64, rep model.ExportedReport) (string, error) {
	const op = "archive.repository.SaveReport"

	if r.bucket == "" {
		return "", fmt.Errorf("%s: %w: bucket is not configured", op, model.ErrInvalidArgument)
	}

	key := path.Join(r.prefix, "cars", fmt.Sprint(carID), "reports",
		r.now().UTC().Format("20060102T150405Z")+"_"+path.Base(rep.Filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(rep.Data),
		Metadata: map[string]string{
			"car-id": fmt.Sprint(carID),
		},
	}
	if rep.ContentType != "" {
		input.ContentType = aws.String(rep.ContentType)
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		logger.Error(ctx, "upload report", logger.String("key", key), logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "report archived",
		logger.String("bucket", r.bucket),
		logger.String("key", key),
		logger.Int("size", len(rep.Data)),
	)

	return key, nil
}
