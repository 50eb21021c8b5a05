// Package drive wraps the Google Drive v3 API with file, folder,
// permission, and revision operations. All calls support shared drives.
package drive
