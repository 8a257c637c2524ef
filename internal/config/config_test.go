package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Storage.Backend != StorageLocal {
		t.Errorf("expected local backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.MaxUploadBytes != 5<<20 {
		t.Errorf("expected 5 MiB upload limit, got %d", cfg.Storage.MaxUploadBytes)
	}
	if cfg.RateLimit.Burst != 5 {
		t.Errorf("expected burst 5, got %d", cfg.RateLimit.Burst)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("expected no trusted proxies by default, got %v", cfg.TrustedProxies)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("API_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STORAGE_BACKEND", " MinIO ")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "key")
	t.Setenv("MINIO_SECRET_KEY", "secret")
	t.Setenv("MINIO_BUCKET", "profiles")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12,")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected two origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Storage.Backend != StorageMinio {
		t.Errorf("expected minio backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Minio.Bucket != "profiles" || !cfg.Storage.Minio.UseSSL {
		t.Errorf("unexpected minio config %+v", cfg.Storage.Minio)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "172.16.0.0/12" {
		t.Errorf("unexpected trusted proxies %v", cfg.TrustedProxies)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": "  "}, "JWT_SECRET"},
		{"unknown backend", map[string]string{"JWT_SECRET": "x", "STORAGE_BACKEND": "ftp"}, "unknown STORAGE_BACKEND"},
		{"minio without bucket", map[string]string{"JWT_SECRET": "x", "STORAGE_BACKEND": "minio", "MINIO_ENDPOINT": "h"}, "MINIO_BUCKET"},
		{"gcs without bucket", map[string]string{"JWT_SECRET": "x", "STORAGE_BACKEND": "gcs"}, "GCS_BUCKET"},
		{"bad trusted proxy", map[string]string{"JWT_SECRET": "x", "TRUSTED_PROXIES": "10.0.0.1,not-an-ip"}, "TRUSTED_PROXIES"},
		{"zero upload limit", map[string]string{"JWT_SECRET": "x", "MAX_UPLOAD_BYTES": "0"}, "MAX_UPLOAD_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
