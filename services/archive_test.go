package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type recordingPutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
}

func (r *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	r.inputs = append(r.inputs, in)
	r.bodies = append(r.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchive(t *testing.T) {
	putter := &recordingPutter{}
	a := NewArchiver(putter, "ops-archive", "submissions")
	a.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }

	key, err := a.Archive(context.Background(), "service-orders", "so-1", map[string]string{"title": "Swap inverter"})
	if err != nil {
		t.Fatal(err)
	}
	if key != "submissions/service-orders/2024/03/10/so-1.json" {
		t.Errorf("key = %q", key)
	}
	in := putter.inputs[0]
	if aws.ToString(in.Bucket) != "ops-archive" || aws.ToString(in.ContentType) != "application/json" {
		t.Errorf("input = %+v", in)
	}
	var body map[string]string
	if err := json.Unmarshal(putter.bodies[0], &body); err != nil || body["title"] != "Swap inverter" {
		t.Errorf("body = %s", putter.bodies[0])
	}
}

func TestArchiveDisabled(t *testing.T) {
	var a *Archiver
	if key, err := a.Archive(context.Background(), "projects", "p1", struct{}{}); key != "" || err != nil {
		t.Errorf("nil archiver = %q, %v", key, err)
	}
	if NewArchiver(&recordingPutter{}, "", "").Enabled() {
		t.Error("archiver without bucket reported enabled")
	}
}
