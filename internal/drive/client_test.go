package drive

import (
	"strings"
	"testing"

	drive "google.golang.org/api/drive/v3"
)

func TestToFile(t *testing.T) {
	f := toFile(&drive.File{
		Id:           "file-1",
		Name:         "budget.xlsx",
		MimeType:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:         4096,
		Parents:      []string{"folder-1"},
		ModifiedTime: "2026-08-20T12:00:00Z",
		Starred:      true,
		Owners: []*drive.User{
			{EmailAddress: "owner@example.com"},
			{},
		},
	})

	if f.ID != "file-1" || f.Name != "budget.xlsx" {
		t.Errorf("file = %+v", f)
	}
	if f.Size != 4096 || !f.Starred {
		t.Errorf("size/starred = %d/%t", f.Size, f.Starred)
	}
	if len(f.Owners) != 1 || f.Owners[0] != "owner@example.com" {
		t.Errorf("owners = %v", f.Owners)
	}
	if f.IsFolder() {
		t.Error("spreadsheet must not be a folder")
	}
}

func TestIsFolder(t *testing.T) {
	f := toFile(&drive.File{Id: "d", MimeType: FolderMimeType})
	if !f.IsFolder() {
		t.Error("expected folder")
	}
}

func TestResolveExportMime(t *testing.T) {
	tests := []struct {
		docMime string
		format  string
		want    string
		wantErr bool
	}{
		{DocMimeType, "pdf", "application/pdf", false},
		{DocMimeType, "PDF", "application/pdf", false},
		{SheetMimeType, "csv", "text/csv", false},
		{SlidesMimeType, "pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", false},
		{DocMimeType, "csv", "", true},
		{"application/pdf", "pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveExportMime(tt.docMime, tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveExportMime(%q, %q): expected error", tt.docMime, tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveExportMime(%q, %q): %v", tt.docMime, tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveExportMime(%q, %q) = %q, want %q", tt.docMime, tt.format, got, tt.want)
		}
	}
}

func TestResolveExportMimeErrorListsFormats(t *testing.T) {
	_, err := ResolveExportMime(SheetMimeType, "bogus")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "csv") {
		t.Errorf("error should name valid formats, got %q", err)
	}
}

func TestEscapeQuery(t *testing.T) {
	if got := escapeQuery("it's a test"); got != `it\'s a test` {
		t.Errorf("escapeQuery = %q", got)
	}
	if got := escapeQuery("plain"); got != "plain" {
		t.Errorf("escapeQuery = %q", got)
	}
}

func TestToPermission(t *testing.T) {
	p := toPermission(&drive.Permission{
		Id:           "perm-1",
		Type:         "user",
		Role:         "writer",
		EmailAddress: "peer@example.com",
	})
	if p.ID != "perm-1" || p.Role != "writer" || p.EmailAddress != "peer@example.com" {
		t.Errorf("permission = %+v", p)
	}
}

func TestToRevision(t *testing.T) {
	r := toRevision(&drive.Revision{
		Id:           "rev-9",
		ModifiedTime: "2026-08-01T08:00:00Z",
		KeepForever:  true,
		Size:         128,
	})
	if r.ID != "rev-9" || !r.KeepForever || r.Size != 128 {
		t.Errorf("revision = %+v", r)
	}
}
