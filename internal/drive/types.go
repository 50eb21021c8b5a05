package drive

import (
	drive "google.golang.org/api/drive/v3"
)

// Drive-specific MIME types.
const (
	FolderMimeType   = "application/vnd.google-apps.folder"
	ShortcutMimeType = "application/vnd.google-apps.shortcut"
	DocMimeType      = "application/vnd.google-apps.document"
	SheetMimeType    = "application/vnd.google-apps.spreadsheet"
	SlidesMimeType   = "application/vnd.google-apps.presentation"
)

// exportFormats maps a Google Workspace MIME type to its supported export
// formats, keyed by the short format name tools accept.
var exportFormats = map[string]map[string]string{
	DocMimeType: {
		"pdf":  "application/pdf",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"txt":  "text/plain",
		"html": "text/html",
	},
	SheetMimeType: {
		"pdf":  "application/pdf",
		"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"csv":  "text/csv",
	},
	SlidesMimeType: {
		"pdf":  "application/pdf",
		"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"txt":  "text/plain",
	},
}

// File is the metadata view of a Drive file or folder.
type File struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mimeType"`
	Size         int64    `json:"size,omitempty"`
	Parents      []string `json:"parents,omitempty"`
	WebViewLink  string   `json:"webViewLink,omitempty"`
	CreatedTime  string   `json:"createdTime,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty"`
	Description  string   `json:"description,omitempty"`
	Trashed      bool     `json:"trashed,omitempty"`
	Starred      bool     `json:"starred,omitempty"`
	Shared       bool     `json:"shared,omitempty"`
	DriveID      string   `json:"driveId,omitempty"`
	Owners       []string `json:"owners,omitempty"`
}

// IsFolder reports whether the file is a folder.
func (f File) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// Permission is one grant on a file.
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"` // user, group, domain, anyone
	Role         string `json:"role"` // owner, organizer, writer, commenter, reader
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
}

// Revision is one saved version of a file.
type Revision struct {
	ID           string `json:"id"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size,omitempty"`
	KeepForever  bool   `json:"keepForever,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
}

// SharedDrive is a shared drive the account can access.
type SharedDrive struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
}

const fileFields = "id, name, mimeType, size, parents, webViewLink, createdTime, modifiedTime, description, trashed, starred, shared, driveId, owners(emailAddress)"

func toFile(f *drive.File) File {
	if f == nil {
		return File{}
	}
	out := File{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Parents:      f.Parents,
		WebViewLink:  f.WebViewLink,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		Description:  f.Description,
		Trashed:      f.Trashed,
		Starred:      f.Starred,
		Shared:       f.Shared,
		DriveID:      f.DriveId,
	}
	for _, o := range f.Owners {
		if o != nil && o.EmailAddress != "" {
			out.Owners = append(out.Owners, o.EmailAddress)
		}
	}
	return out
}

func toPermission(p *drive.Permission) Permission {
	if p == nil {
		return Permission{}
	}
	return Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
	}
}

func toRevision(r *drive.Revision) Revision {
	if r == nil {
		return Revision{}
	}
	return Revision{
		ID:           r.Id,
		ModifiedTime: r.ModifiedTime,
		Size:         r.Size,
		KeepForever:  r.KeepForever,
		MimeType:     r.MimeType,
	}
}
