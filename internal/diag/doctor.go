// Package diag implements the operational checks an operator runs when the
// upload path misbehaves: credential identity, folder access and writability,
// and a throwaway test upload. These are manual tools; the served request path
// never retries through them.
package diag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"capsule_backend/internal/storage"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Doctor holds one authenticated Drive client shared across checks.
type Doctor struct {
	svc      *drive.Service
	folderID string
	email    string
	out      io.Writer
}

// NewDoctor authenticates with the same credential material the server uses.
func NewDoctor(ctx context.Context, cfg storage.Config, folderID string, out io.Writer) (*Doctor, error) {
	data, err := storage.LoadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	email, err := storage.ServiceAccountEmail(data)
	if err != nil {
		return nil, err
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(data),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Doctor{svc: svc, folderID: folderID, email: email, out: out}, nil
}

// Email returns the service account identity, the address an operator must
// share the destination folder with.
func (d *Doctor) Email() string {
	return d.email
}

// Status checks the folder once and reports whether files can be added to it.
func (d *Doctor) Status(ctx context.Context) error {
	fmt.Fprintf(d.out, "Checking folder %s as %s\n", d.folderID, d.email)

	f, err := d.svc.Files.Get(d.folderID).
		SupportsAllDrives(true).
		Fields("id", "name", "capabilities").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("folder check failed: %w", err)
	}

	fmt.Fprintf(d.out, "Folder found: %s\n", f.Name)

	canAdd := f.Capabilities != nil && f.Capabilities.CanAddChildren
	if !canAdd {
		fmt.Fprintln(d.out, "The service account cannot add files yet; share the folder with it as Editor.")
		return errors.New("folder is not writable by the service account")
	}

	fmt.Fprintln(d.out, "The folder accepts uploads. Ready to use.")
	return nil
}

// Auth confirms the credentials by asking Drive who we are.
func (d *Doctor) Auth(ctx context.Context) error {
	about, err := d.svc.About.Get().Fields("user").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("authentication check failed: %w", err)
	}

	authenticated := "N/A"
	if about.User != nil {
		authenticated = about.User.EmailAddress
	}
	fmt.Fprintf(d.out, "Authenticated as: %s\n", authenticated)
	return nil
}

// Folder prints the folder metadata and a sample of its children.
func (d *Doctor) Folder(ctx context.Context) error {
	f, err := d.svc.Files.Get(d.folderID).
		SupportsAllDrives(true).
		Fields("id", "name", "mimeType", "createdTime", "driveId").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("folder lookup failed: %w", err)
	}

	fmt.Fprintf(d.out, "Folder: %s (%s)\n", f.Name, f.Id)
	fmt.Fprintf(d.out, "MIME type: %s, created: %s\n", f.MimeType, f.CreatedTime)
	if f.DriveId != "" {
		fmt.Fprintf(d.out, "Shared drive: %s\n", f.DriveId)
	}

	list, err := d.svc.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", d.folderID)).
		PageSize(5).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("listing folder contents failed: %w", err)
	}

	fmt.Fprintf(d.out, "First %d item(s):\n", len(list.Files))
	for _, item := range list.Files {
		fmt.Fprintf(d.out, "  %s (%s)\n", item.Name, item.Id)
	}
	return nil
}

// Upload sends a small generated text file into the folder, optionally making
// it publicly viewable, and prints the resulting identity and link.
func (d *Doctor) Upload(ctx context.Context, public bool) error {
	now := time.Now().UTC()
	content := fmt.Sprintf(
		"Time capsule diagnostic upload\n"+
			"Timestamp: %s\n"+
			"Service account: %s\n"+
			"Folder: %s\n\n"+
			"If you can see this file in the Drive folder, uploads work.\n"+
			"You can safely delete it.\n",
		now.Format(time.RFC3339), d.email, d.folderID)

	meta := storage.FileMetadata{
		Name:        fmt.Sprintf("DIAG_CAPSULE_%s.txt", now.Format("20060102_150405")),
		Description: "Diagnostic upload generated by drivecheck",
		MimeType:    "text/plain",
	}

	store := storage.NewDriveStoreFromService(d.svc)
	obj, err := store.CreateFile(ctx, d.folderID, meta, strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("test upload failed: %w", err)
	}

	fmt.Fprintf(d.out, "Uploaded %s (%s)\n", obj.Name, obj.ID)
	if obj.ViewLink != "" {
		fmt.Fprintf(d.out, "Link: %s\n", obj.ViewLink)
	}

	if public {
		_, err := d.svc.Permissions.Create(obj.ID, &drive.Permission{
			Role: "reader",
			Type: "anyone",
		}).SupportsAllDrives(true).Context(ctx).Do()
		if err != nil {
			// Not critical, many folders forbid public sharing.
			fmt.Fprintf(d.out, "Could not make the file public: %v\n", err)
		} else {
			fmt.Fprintln(d.out, "File is publicly viewable.")
		}
	}

	return nil
}

// WaitWritable polls Status until the folder becomes writable, for operators
// waiting on a sharing change to propagate.
func (d *Doctor) WaitWritable(ctx context.Context, attempts int, wait time.Duration) error {
	for attempt := 1; attempt <= attempts; attempt++ {
		fmt.Fprintf(d.out, "Attempt %d/%d\n", attempt, attempts)

		if err := d.Status(ctx); err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}
		fmt.Fprintf(d.out, "Waiting %s before retrying...\n", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("folder still not writable after %d attempts", attempts)
}
