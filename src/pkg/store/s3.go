package store

import (
	"bytes"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// S3Store keeps session values as objects under a key prefix in one bucket.
type S3Store struct {
	bucket     string
	prefix     string
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
	s3svc      *s3.S3
}

func newS3Store(bucket, region, prefix string) (s *S3Store, e *xerr.Error) {
	if bucket == "" {
		return nil, xerr.NewError(nil, "S3 store needs a bucket name in the store config section", nil)
	}

	sess, sessErr := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if sessErr != nil {
		return nil, xerr.NewError(sessErr, "Failed to set up aws session", region)
	}

	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	tl.Log(tl.Verbose, palette.CyanDim, "Session store is %s at 's3://%s/%s'", "S3", bucket, prefix)
	return &S3Store{
		bucket:     bucket,
		prefix:     prefix,
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
		s3svc:      s3.New(sess),
	}, nil
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + key
}

func (s *S3Store) Put(key string, data []byte) (e *xerr.Error) {
	_, uploadErr := s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
		Body:   bytes.NewReader(data),
	})
	if uploadErr != nil {
		return xerr.NewError(uploadErr, "Unable to upload session value", s.objectKey(key))
	}
	tl.Log(tl.Verbose, palette.GreenDim, "Stored %v bytes at 's3://%s/%s'", len(data), s.bucket, s.objectKey(key))
	return nil
}

func (s *S3Store) Get(key string) (data []byte, found bool, e *xerr.Error) {
	buf := aws.NewWriteAtBuffer([]byte{})
	_, downloadErr := s.downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if downloadErr != nil {
		if aerr, ok := downloadErr.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, false, nil
		}
		return nil, false, xerr.NewError(downloadErr, "Unable to download session value", s.objectKey(key))
	}
	return buf.Bytes(), true, nil
}

func (s *S3Store) Delete(key string) (e *xerr.Error) {
	_, deleteErr := s.s3svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if deleteErr != nil {
		return xerr.NewError(deleteErr, "Unable to delete session value", s.objectKey(key))
	}
	return nil
}
