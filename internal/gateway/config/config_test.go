package config

import "testing"

func TestCanUseS3(t *testing.T) {
	full := AttachmentConfig{
		Endpoint:  "minio:9000",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "b",
	}
	if !full.CanUseS3() {
		t.Fatalf("complete config should allow s3")
	}
	for _, strip := range []func(*AttachmentConfig){
		func(a *AttachmentConfig) { a.Endpoint = "" },
		func(a *AttachmentConfig) { a.AccessKey = "" },
		func(a *AttachmentConfig) { a.SecretKey = "" },
		func(a *AttachmentConfig) { a.Bucket = "" },
	} {
		cfg := full
		strip(&cfg)
		if cfg.CanUseS3() {
			t.Fatalf("incomplete config should not allow s3: %+v", cfg)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "x", "y"); got != "x" {
		t.Fatalf("got %q", got)
	}
	if got := firstNonEmpty("", "  "); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveDatabaseURL_LocalDefault(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if got := resolveDatabaseURL("local"); got != localDatabaseURL {
		t.Fatalf("got %q", got)
	}
	if got := resolveDatabaseURL("prod"); got != "" {
		t.Fatalf("non-local without DATABASE_URL should be empty, got %q", got)
	}
	t.Setenv("DATABASE_URL", "postgres://x")
	if got := resolveDatabaseURL("prod"); got != "postgres://x" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveAttachmentUseSSL(t *testing.T) {
	t.Setenv("ATTACHMENT_S3_USE_SSL", "")
	if resolveAttachmentUseSSL("local") {
		t.Fatalf("local should default to no ssl")
	}
	if !resolveAttachmentUseSSL("prod") {
		t.Fatalf("non-local should default to ssl")
	}
	t.Setenv("ATTACHMENT_S3_USE_SSL", "false")
	if resolveAttachmentUseSSL("prod") {
		t.Fatalf("explicit false should win")
	}
}
