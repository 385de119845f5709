// Package storage saves rendered invoice documents.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Destination receives finished documents.
type Destination interface {
	// Save stores data under name and returns where it ended up.
	Save(ctx context.Context, name string, data []byte) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns the export name for an invoice number, e.g.
// "Invoice-RG-101.pdf", or "Invoice-draft.pdf" when the number is blank.
func FileName(invoiceNo string) string {
	no := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(invoiceNo), "-"), "-.")
	if no == "" {
		no = "draft"
	}
	return "Invoice-" + no + ".pdf"
}

// --- Local directory ---

type fileDestination struct {
	dir string
}

// NewFileDestination writes documents into dir, creating it when needed.
func NewFileDestination(dir string) Destination {
	return &fileDestination{dir: dir}
}

func (d *fileDestination) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: failed to create %s: %w", d.dir, err)
	}
	p := filepath.Join(d.dir, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: failed to write %s: %w", p, err)
	}
	return p, nil
}

// --- S3 bucket ---

type s3Destination struct {
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Destination uploads documents to bucket under prefix.
func NewS3Destination(region, bucket, prefix string) (Destination, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required for s3 destination")
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create aws session: %w", err)
	}
	return &s3Destination{
		uploader: s3manager.NewUploader(sess),
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
	}, nil
}

func (d *s3Destination) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(d.prefix, path.Base(name))
	out, err := d.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload %s to %s: %w", key, d.bucket, err)
	}
	return out.Location, nil
}

// NewDestinationFromConfig creates the Destination for kind.
//
//	kind: "file" (default) or "s3"
func NewDestinationFromConfig(kind, dir, region, bucket, prefix string) (Destination, error) {
	switch kind {
	case "file", "":
		if dir == "" {
			dir = "exports"
		}
		return NewFileDestination(dir), nil
	case "s3":
		return NewS3Destination(region, bucket, prefix)
	default:
		return nil, fmt.Errorf("storage: unknown export destination %q (use file or s3)", kind)
	}
}
