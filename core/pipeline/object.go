package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"record-sync/core/record"
	"record-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectSource streams batches from NDJSON objects in a bucket. Every object
// under the prefix is one batch; lines are JSON documents, one record each.
type ObjectSource struct {
	client    storage.Client
	bucket    string
	prefix    string
	extension string
	objects   []string
	listed    bool
	pos       int
}

// NewObjectSource builds a source over bucket objects matching prefix and
// extension (e.g. ".ndjson"). An empty extension matches every object.
func NewObjectSource(client storage.Client, bucket, prefix, extension string) *ObjectSource {
	return &ObjectSource{client: client, bucket: bucket, prefix: prefix, extension: extension}
}

func (s *ObjectSource) Next(ctx context.Context) (Batch, error) {
	if !s.listed {
		if err := s.list(ctx); err != nil {
			return Batch{}, err
		}
	}
	if s.pos >= len(s.objects) {
		return Batch{}, Done
	}

	name := s.objects[s.pos]
	records, err := s.read(ctx, name)
	if err != nil {
		return Batch{}, err
	}

	batch := Batch{
		Records:  records,
		Settings: Settings{Origin: name, Index: s.pos},
	}
	s.pos++
	return batch, nil
}

// list collects matching object names once, sorted so batch order is stable
// across runs.
func (s *ObjectSource) list(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return fmt.Errorf("failed to list objects under %s: %w", s.prefix, info.Err)
		}
		if s.extension != "" && !strings.HasSuffix(info.Key, s.extension) {
			continue
		}
		s.objects = append(s.objects, info.Key)
	}
	sort.Strings(s.objects)
	s.listed = true
	return nil
}

func (s *ObjectSource) read(ctx context.Context, name string) ([]record.Map, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", name, err)
	}
	defer obj.Close()

	var records []record.Map
	scanner := bufio.NewScanner(obj)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		row := map[string]any{}
		if err := json.Unmarshal([]byte(text), &row); err != nil {
			return nil, fmt.Errorf("failed to parse %s line %d: %w", name, line, err)
		}
		records = append(records, coerce(row))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", name, err)
	}
	return records, nil
}

// coerce folds JSON numbers that carry integral values back to int64 so keys
// and counters compare cleanly against database-loaded rows.
func coerce(row map[string]any) record.Map {
	rec := make(record.Map, len(row))
	for k, v := range row {
		if f, ok := v.(float64); ok && f == float64(int64(f)) {
			rec[k] = int64(f)
			continue
		}
		rec[k] = v
	}
	return rec
}
