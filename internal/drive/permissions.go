package drive

import (
	"context"
	"fmt"

	drive "google.golang.org/api/drive/v3"
)

// Valid permission roles, most to least privileged.
var validRoles = map[string]bool{
	"owner":         true,
	"organizer":     true,
	"fileOrganizer": true,
	"writer":        true,
	"commenter":     true,
	"reader":        true,
}

// ShareFile grants a user or group access to a file and returns the created
// permission. Role is one of owner, writer, commenter, or reader.
func (c *Client) ShareFile(ctx context.Context, fileID, email, role string, notify bool) (*Permission, error) {
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	created, err := c.svc.Permissions.Create(fileID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).
		SendNotificationEmail(notify).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("share file %s with %s: %w", fileID, email, err)
	}
	result := toPermission(created)
	return &result, nil
}

// MakePublic grants link access to anyone. With discoverable set, the file
// also appears in search results.
func (c *Client) MakePublic(ctx context.Context, fileID, role string, discoverable bool) (*Permission, error) {
	if role == "" {
		role = "reader"
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	created, err := c.svc.Permissions.Create(fileID, &drive.Permission{
		Type:               "anyone",
		Role:               role,
		AllowFileDiscovery: discoverable,
	}).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("make file %s public: %w", fileID, err)
	}
	result := toPermission(created)
	return &result, nil
}

// ListPermissions lists the grants on a file.
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]Permission, error) {
	res, err := c.svc.Permissions.List(fileID).
		Fields("permissions(id, type, role, emailAddress, domain)").
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list permissions of %s: %w", fileID, err)
	}
	var perms []Permission
	for _, p := range res.Permissions {
		perms = append(perms, toPermission(p))
	}
	return perms, nil
}

// UpdatePermission changes the role of an existing grant.
func (c *Client) UpdatePermission(ctx context.Context, fileID, permissionID, role string) (*Permission, error) {
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	updated, err := c.svc.Permissions.Update(fileID, permissionID, &drive.Permission{Role: role}).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update permission %s on %s: %w", permissionID, fileID, err)
	}
	result := toPermission(updated)
	return &result, nil
}

// RemovePermission revokes a grant.
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	err := c.svc.Permissions.Delete(fileID, permissionID).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("remove permission %s from %s: %w", permissionID, fileID, err)
	}
	return nil
}

// Unshare revokes a specific user's access by email.
func (c *Client) Unshare(ctx context.Context, fileID, email string) error {
	perms, err := c.ListPermissions(ctx, fileID)
	if err != nil {
		return err
	}
	for _, p := range perms {
		if p.EmailAddress == email {
			return c.RemovePermission(ctx, fileID, p.ID)
		}
	}
	return fmt.Errorf("no permission for %s on file %s", email, fileID)
}
