package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dmitrijs2005/supportchat/internal/common"
)

// ObjectReader fetches a whole object from object storage.
type ObjectReader interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// LoadCorpus resolves the FAQ corpus from source: empty means the embedded
// DefaultFAQ, "s3://bucket/key" reads through objects, anything else is a
// local file path.
func LoadCorpus(ctx context.Context, source string, objects ObjectReader) (string, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case source == "":
		return DefaultFAQ, nil
	case strings.HasPrefix(source, "s3://"):
		data, err = loadFromS3(ctx, source, objects)
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", fmt.Errorf("load faq corpus from %s: %w", source, err)
	}

	corpus := string(data)
	if strings.TrimSpace(corpus) == "" {
		return "", fmt.Errorf("faq corpus from %s is empty", source)
	}

	return corpus, nil
}

func loadFromS3(ctx context.Context, source string, objects ObjectReader) ([]byte, error) {
	if objects == nil {
		return nil, fmt.Errorf("object storage: %w", common.ErrNotConfigured)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, errors.New("expected s3://bucket/key")
	}

	return objects.GetObject(ctx, u.Host, key)
}
