package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
)

// s3Disk is the S3-compatible object storage driver.
type s3Disk struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func newS3Disk() (*s3Disk, error) {
	bucket := config.StorageS3Bucket()
	region := config.StorageS3Region()
	key := config.StorageS3Key()
	secret := config.StorageS3Secret()
	endpoint := config.StorageS3Endpoint() // leave empty for real AWS
	baseURL := strings.TrimRight(config.StorageS3URL(), "/")

	if bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}

	// Static credentials (required for MinIO / R2 / Spaces).
	if key != "" && secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &s3Disk{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (d *s3Disk) Put(path string, content []byte) error {
	return d.PutStream(path, bytes.NewReader(content))
}

func (d *s3Disk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("storage/s3: read: %w", err)
	}
	_, err = d.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) Get(path string) ([]byte, error) {
	rc, err := d.GetStream(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d *s3Disk) GetStream(path string) (io.ReadCloser, error) {
	out, err := d.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("storage/s3: get %s: %w", path, err)
	}
	return out.Body, nil
}

func (d *s3Disk) Exists(path string) bool {
	_, err := d.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	return err == nil
}

func (d *s3Disk) Delete(path string) error {
	_, err := d.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", path, err)
	}
	return nil
}

func (d *s3Disk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (d *s3Disk) List(prefix string) ([]string, error) {
	pfx := strings.TrimLeft(prefix, "/")
	if pfx != "" && !strings.HasSuffix(pfx, "/") {
		pfx += "/"
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(d.bucket),
		Prefix: aws.String(pfx),
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(context.Background())
		if err != nil {
			return nil, fmt.Errorf("storage/s3: list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

func (d *s3Disk) LastModified(path string) (time.Time, error) {
	out, err := d.client.HeadObject(context.Background(), &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("storage/s3: head %s: %w", path, err)
	}
	if out.LastModified == nil {
		return time.Time{}, nil
	}
	return *out.LastModified, nil
}
