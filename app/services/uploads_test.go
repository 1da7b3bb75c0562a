package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
)

func TestUploadsAttendancePath(t *testing.T) {
	root := t.TempDir()
	uploads := services.NewUploads(root)

	diskPath, ref, err := uploads.Attendance("u1", "2024-06-03", models.DirectionIn, "IMG_001.PNG")
	if err != nil {
		t.Fatalf("attendance path: %v", err)
	}
	if want := filepath.Join(root, "attendance", "u1_2024-06-03_in.png"); diskPath != want {
		t.Fatalf("disk path = %q, want %q", diskPath, want)
	}
	if ref != "/uploads/attendance/u1_2024-06-03_in.png" {
		t.Fatalf("ref = %q", ref)
	}
	if info, err := os.Stat(filepath.Join(root, "attendance")); err != nil || !info.IsDir() {
		t.Fatalf("expected attendance dir to exist: %v", err)
	}

	_, ref, err = uploads.Attendance("u1", "2024-06-03", models.DirectionOut, "blob")
	if err != nil {
		t.Fatalf("attendance path: %v", err)
	}
	if ref != "/uploads/attendance/u1_2024-06-03_out.jpg" {
		t.Fatalf("ref without extension = %q", ref)
	}
}

func TestUploadsReccePathSanitizes(t *testing.T) {
	root := t.TempDir()
	uploads := services.NewUploads(root)
	when := time.Unix(1717400000, 0)

	diskPath, ref, err := uploads.Recce("u1", when, "../../etc/site plan (v2).pdf")
	if err != nil {
		t.Fatalf("recce path: %v", err)
	}
	if ref != "/uploads/recce/u1_1717400000_site_plan__v2_.pdf" {
		t.Fatalf("ref = %q", ref)
	}
	if !strings.HasPrefix(diskPath, filepath.Join(root, "recce")+string(filepath.Separator)) {
		t.Fatalf("disk path %q escapes upload root", diskPath)
	}

	_, ref, err = uploads.Recce("u1", when, "..")
	if err != nil {
		t.Fatalf("recce path: %v", err)
	}
	if ref != "/uploads/recce/u1_1717400000_file" {
		t.Fatalf("ref for dot name = %q", ref)
	}
}
