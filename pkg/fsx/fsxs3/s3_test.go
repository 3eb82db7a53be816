package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	objects     map[string][]byte
	contentType map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	f.objects[key] = data
	f.contentType[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	fs := NewS3FileSystem(api, "bucket", "us-east-1", "/uploads/")

	p := fs.Join("resumes", "user_1", "cv.pdf")
	if err := fs.WriteFile(ctx, p, []byte("%PDF-1.7")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, ok := api.objects["uploads/resumes/user_1/cv.pdf"]; !ok {
		t.Fatalf("object stored under unexpected keys: %v", api.objects)
	}
	if ct := api.contentType["uploads/resumes/user_1/cv.pdf"]; ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}

	data, err := fs.ReadFile(ctx, p)
	if err != nil || string(data) != "%PDF-1.7" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}

	if err := fs.DeleteFile(ctx, p); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := fs.ReadFile(ctx, p); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestS3FileSystemURL(t *testing.T) {
	fs := NewS3FileSystem(newFakeS3(), "cvs", "ap-south-1", "")
	want := "https://cvs.s3.ap-south-1.amazonaws.com/resumes/a/b.pdf"
	if got := fs.URL("resumes/a/b.pdf"); got != want {
		t.Fatalf("URL = %q, want %q", got, want)
	}
}
