package drive

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// MaxDownloadSize caps in-memory downloads at 100MB.
const MaxDownloadSize = 100 * 1024 * 1024

// Client wraps the Drive service for one account.
type Client struct {
	svc     *drive.Service
	account string
}

// NewClient creates a Drive client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := drive.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Drive service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// ListOptions narrows a file listing.
type ListOptions struct {
	Query      string // raw Drive query, combined with the other filters
	FolderID   string // restrict to children of this folder
	DriveID    string // restrict to one shared drive
	MaxResults int64
	OrderBy    string
	Trashed    bool // include only trashed files instead of excluding them
}

// ListFiles lists files matching the options. Trashed files are excluded
// unless opts.Trashed is set.
func (c *Client) ListFiles(ctx context.Context, opts ListOptions) ([]File, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 25
	}

	terms := []string{fmt.Sprintf("trashed = %t", opts.Trashed)}
	if opts.Query != "" {
		terms = append(terms, "("+opts.Query+")")
	}
	if opts.FolderID != "" {
		terms = append(terms, fmt.Sprintf("'%s' in parents", escapeQuery(opts.FolderID)))
	}

	req := c.svc.Files.List().
		Q(strings.Join(terms, " and ")).
		PageSize(min(opts.MaxResults, 100)).
		Fields(googleapi.Field("files(" + fileFields + "), nextPageToken")).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)
	if opts.DriveID != "" {
		req = req.Corpora("drive").DriveId(opts.DriveID)
	}
	if opts.OrderBy != "" {
		req = req.OrderBy(opts.OrderBy)
	}

	var files []File
	pageToken := ""
	for int64(len(files)) < opts.MaxResults {
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		res, err := req.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		for _, f := range res.Files {
			files = append(files, toFile(f))
		}
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}
	if int64(len(files)) > opts.MaxResults {
		files = files[:opts.MaxResults]
	}
	return files, nil
}

// SearchFiles searches by name substring across all drives the account can
// see.
func (c *Client) SearchFiles(ctx context.Context, name string, maxResults int64) ([]File, error) {
	return c.ListFiles(ctx, ListOptions{
		Query:      fmt.Sprintf("name contains '%s'", escapeQuery(name)),
		MaxResults: maxResults,
	})
}

// GetFile retrieves file metadata.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	f, err := c.svc.Files.Get(fileID).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}
	result := toFile(f)
	return &result, nil
}

// CreateFolder creates a folder, optionally inside a parent folder.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*File, error) {
	meta := &drive.File{Name: name, MimeType: FolderMimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := c.svc.Files.Create(meta).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create folder %q: %w", name, err)
	}
	result := toFile(created)
	return &result, nil
}

// UploadFile uploads a local file, optionally into a parent folder. The MIME
// type is inferred from the filename unless mimeType is given.
func (c *Client) UploadFile(ctx context.Context, localPath, parentID, mimeType string) (*File, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(localPath))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
	}
	meta := &drive.File{Name: filepath.Base(localPath)}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := c.svc.Files.Create(meta).
		Media(f, googleapi.ContentType(mimeType)).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", localPath, err)
	}
	result := toFile(created)
	return &result, nil
}

// UploadContent uploads in-memory content as a new file.
func (c *Client) UploadContent(ctx context.Context, name string, content io.Reader, parentID, mimeType string) (*File, error) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	meta := &drive.File{Name: name}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := c.svc.Files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", name, err)
	}
	result := toFile(created)
	return &result, nil
}

// DownloadFile downloads a binary file's content. Google Workspace documents
// cannot be downloaded directly and must go through ExportFile.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	res, err := c.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("file %s exceeds maximum download size %d", fileID, MaxDownloadSize)
	}
	return data, nil
}

// ExportFile exports a Google Workspace document in the given format, for
// example "pdf" or "docx". The valid formats depend on the document type.
func (c *Client) ExportFile(ctx context.Context, fileID, format string) ([]byte, string, error) {
	meta, err := c.GetFile(ctx, fileID)
	if err != nil {
		return nil, "", err
	}

	exportMime, err := ResolveExportMime(meta.MimeType, format)
	if err != nil {
		return nil, "", err
	}

	res, err := c.svc.Files.Export(fileID, exportMime).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("export file %s as %s: %w", fileID, format, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read export of %s: %w", fileID, err)
	}
	if len(data) > MaxDownloadSize {
		return nil, "", fmt.Errorf("export of %s exceeds maximum download size %d", fileID, MaxDownloadSize)
	}
	return data, exportMime, nil
}

// ResolveExportMime maps a document MIME type and short format name to the
// export MIME type.
func ResolveExportMime(docMime, format string) (string, error) {
	formats, ok := exportFormats[docMime]
	if !ok {
		return "", fmt.Errorf("%s is not an exportable Google Workspace document", docMime)
	}
	exportMime, ok := formats[strings.ToLower(format)]
	if !ok {
		names := make([]string, 0, len(formats))
		for name := range formats {
			names = append(names, name)
		}
		return "", fmt.Errorf("unsupported export format %q, valid formats: %s", format, strings.Join(names, ", "))
	}
	return exportMime, nil
}

// CopyFile copies a file, optionally renaming it and placing it in a folder.
func (c *Client) CopyFile(ctx context.Context, fileID, newName, parentID string) (*File, error) {
	meta := &drive.File{}
	if newName != "" {
		meta.Name = newName
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	copied, err := c.svc.Files.Copy(fileID, meta).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("copy file %s: %w", fileID, err)
	}
	result := toFile(copied)
	return &result, nil
}

// MoveFile moves a file into a new parent folder, removing it from its
// current parents.
func (c *Client) MoveFile(ctx context.Context, fileID, newParentID string) (*File, error) {
	current, err := c.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	moved, err := c.svc.Files.Update(fileID, &drive.File{}).
		AddParents(newParentID).
		RemoveParents(strings.Join(current.Parents, ",")).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("move file %s: %w", fileID, err)
	}
	result := toFile(moved)
	return &result, nil
}

// RenameFile renames a file.
func (c *Client) RenameFile(ctx context.Context, fileID, newName string) (*File, error) {
	return c.update(ctx, fileID, &drive.File{Name: newName})
}

// SetDescription sets a file's description.
func (c *Client) SetDescription(ctx context.Context, fileID, description string) (*File, error) {
	return c.update(ctx, fileID, &drive.File{
		Description:     description,
		ForceSendFields: []string{"Description"},
	})
}

// SetStarred stars or unstars a file.
func (c *Client) SetStarred(ctx context.Context, fileID string, starred bool) (*File, error) {
	return c.update(ctx, fileID, &drive.File{
		Starred:         starred,
		ForceSendFields: []string{"Starred"},
	})
}

// TrashFile moves a file to trash.
func (c *Client) TrashFile(ctx context.Context, fileID string) error {
	_, err := c.update(ctx, fileID, &drive.File{Trashed: true, ForceSendFields: []string{"Trashed"}})
	return err
}

// UntrashFile restores a file from trash.
func (c *Client) UntrashFile(ctx context.Context, fileID string) error {
	_, err := c.update(ctx, fileID, &drive.File{Trashed: false, ForceSendFields: []string{"Trashed"}})
	return err
}

// DeleteFile permanently deletes a file, bypassing trash.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	err := c.svc.Files.Delete(fileID).SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return nil
}

// EmptyTrash permanently deletes everything in the account's trash.
func (c *Client) EmptyTrash(ctx context.Context) error {
	if err := c.svc.Files.EmptyTrash().Context(ctx).Do(); err != nil {
		return fmt.Errorf("empty trash: %w", err)
	}
	return nil
}

// CreateShortcut creates a shortcut pointing at a target file.
func (c *Client) CreateShortcut(ctx context.Context, name, targetID, parentID string) (*File, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: ShortcutMimeType,
		ShortcutDetails: &drive.FileShortcutDetails{
			TargetId: targetID,
		},
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	created, err := c.svc.Files.Create(meta).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create shortcut to %s: %w", targetID, err)
	}
	result := toFile(created)
	return &result, nil
}

// ListSharedDrives lists shared drives the account can access.
func (c *Client) ListSharedDrives(ctx context.Context, maxResults int64) ([]SharedDrive, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	res, err := c.svc.Drives.List().PageSize(min(maxResults, 100)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list shared drives: %w", err)
	}
	var drives []SharedDrive
	for _, d := range res.Drives {
		drives = append(drives, SharedDrive{ID: d.Id, Name: d.Name, CreatedTime: d.CreatedTime})
	}
	return drives, nil
}

// ListRevisions lists the saved revisions of a file.
func (c *Client) ListRevisions(ctx context.Context, fileID string) ([]Revision, error) {
	res, err := c.svc.Revisions.List(fileID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list revisions of %s: %w", fileID, err)
	}
	var revisions []Revision
	for _, r := range res.Revisions {
		revisions = append(revisions, toRevision(r))
	}
	return revisions, nil
}

// KeepRevision pins or unpins a revision so it is never purged.
func (c *Client) KeepRevision(ctx context.Context, fileID, revisionID string, keep bool) error {
	_, err := c.svc.Revisions.Update(fileID, revisionID, &drive.Revision{
		KeepForever:     keep,
		ForceSendFields: []string{"KeepForever"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update revision %s of %s: %w", revisionID, fileID, err)
	}
	return nil
}

// DeleteRevision deletes a revision.
func (c *Client) DeleteRevision(ctx context.Context, fileID, revisionID string) error {
	err := c.svc.Revisions.Delete(fileID, revisionID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete revision %s of %s: %w", revisionID, fileID, err)
	}
	return nil
}

func (c *Client) update(ctx context.Context, fileID string, meta *drive.File) (*File, error) {
	updated, err := c.svc.Files.Update(fileID, meta).
		Fields(googleapi.Field(fileFields)).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update file %s: %w", fileID, err)
	}
	result := toFile(updated)
	return &result, nil
}

// escapeQuery escapes single quotes in values interpolated into Drive query
// strings.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
