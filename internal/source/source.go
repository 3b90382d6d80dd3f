// Package source builds download URLs for catalog sounds.
package source

import (
	"net/url"
	"strings"

	"github.com/zjrosen/soundfetch/internal/catalog"
)

const (
	driveDownloadTemplate = "https://drive.google.com/uc?export=download&id={id}"
	driveFolderTemplate   = "https://drive.google.com/drive/folders/{id}"
	driveFileTemplate     = "https://drive.google.com/file/d/{id}/view"
)

// DriveURL returns the direct-download URL for an external file identifier.
// The identifier is substituted verbatim.
func DriveURL(id string) string {
	return strings.Replace(driveDownloadTemplate, "{id}", id, 1)
}

// DriveFolderURL returns the browser URL of a shared folder.
func DriveFolderURL(folderID string) string {
	return strings.Replace(driveFolderTemplate, "{id}", folderID, 1)
}

// DriveFileURL returns the viewer URL in which operators find a file ID.
func DriveFileURL(id string) string {
	return strings.Replace(driveFileTemplate, "{id}", id, 1)
}

// SupabaseURL returns the public storage URL of fileName in bucket.
// Returns "" when baseURL is empty.
func SupabaseURL(baseURL, bucket, fileName string) string {
	if baseURL == "" {
		return ""
	}
	project := strings.TrimPrefix(baseURL, "https://")
	project = strings.TrimSuffix(strings.TrimSuffix(project, "/"), ".supabase.co")
	return "https://" + project + ".supabase.co/storage/v1/object/public/" + bucket + "/" + url.PathEscape(fileName)
}

// Resolver orders the candidate URLs of a sound.
type Resolver struct {
	SupabaseBaseURL string
	SupabaseBucket  string
	Fallbacks       bool
}

// Candidates returns the URLs to try for s, highest priority first:
// the external identifier, Supabase storage, then public fallbacks.
func (r Resolver) Candidates(s catalog.Sound) []string {
	var urls []string
	if s.HasDriveID() {
		urls = append(urls, DriveURL(s.DriveID))
	}
	if u := SupabaseURL(r.SupabaseBaseURL, r.SupabaseBucket, s.FileName); u != "" {
		urls = append(urls, u)
	}
	if r.Fallbacks {
		urls = append(urls, s.Fallbacks...)
	}
	return urls
}
