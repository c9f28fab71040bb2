package gcp

import "testing"

func TestStorageConfigFromEnv(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		emulator string
		wantMode StorageMode
		wantErr  bool
	}{
		{name: "default gcs", wantMode: StorageModeGCS},
		{name: "explicit gcs ignores emulator", mode: "gcs", emulator: "http://fake-gcs:4443", wantMode: StorageModeGCS},
		{name: "emulator implied", emulator: "http://fake-gcs:4443", wantMode: StorageModeGCSEmulator},
		{name: "explicit emulator", mode: "GCS_EMULATOR", emulator: "http://fake-gcs:4443", wantMode: StorageModeGCSEmulator},
		{name: "emulator without host", mode: "gcs_emulator", wantErr: true},
		{name: "emulator bad host", mode: "gcs_emulator", emulator: "fake-gcs", wantErr: true},
		{name: "unknown mode", mode: "s3", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OBJECT_STORAGE_MODE", tc.mode)
			t.Setenv("STORAGE_EMULATOR_HOST", tc.emulator)
			t.Setenv("OBJECT_STORAGE_PUBLIC_BASE_URL", "")

			cfg, err := StorageConfigFromEnv("galaxy-images")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("StorageConfigFromEnv: expected error, got cfg=%+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("StorageConfigFromEnv: %v", err)
			}
			if cfg.Mode != tc.wantMode {
				t.Fatalf("mode: want=%q got=%q", tc.wantMode, cfg.Mode)
			}
		})
	}
}

func TestStorageConfigMissingBucket(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	if _, err := StorageConfigFromEnv(" "); err == nil {
		t.Fatalf("StorageConfigFromEnv: expected error for empty bucket")
	}
}

func TestStorageConfigPublicURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  StorageConfig
		key  string
		want string
	}{
		{
			name: "gcs default",
			cfg:  StorageConfig{Mode: StorageModeGCS, Bucket: "imgs"},
			key:  "/G1/lupton.png",
			want: "https://storage.googleapis.com/imgs/G1/lupton.png",
		},
		{
			name: "gcs with public base",
			cfg:  StorageConfig{Mode: StorageModeGCS, Bucket: "imgs", PublicBaseURL: "https://cdn.example.com"},
			key:  "G1/lupton.png",
			want: "https://cdn.example.com/imgs/G1/lupton.png",
		},
		{
			name: "emulator escapes key",
			cfg:  StorageConfig{Mode: StorageModeGCSEmulator, Bucket: "imgs", EmulatorHost: "http://localhost:4443"},
			key:  "G+1/aplpy.png",
			want: "http://localhost:4443/storage/v1/b/imgs/o/G+1%2Faplpy.png?alt=media",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.PublicURL(tc.key); got != tc.want {
				t.Fatalf("PublicURL: want=%q got=%q", tc.want, got)
			}
		})
	}
}
