package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/google/uuid"
)

func CreateRecce(ctx context.Context, q Querier, upload *models.RecceUpload) error {
	if upload.FileRef == "" {
		return fmt.Errorf("file reference is required")
	}
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = time.Now().UTC()
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO recce (id, user_id, uploaded_at, project, notes, file_ref, original_name) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		upload.ID, upload.UserID, toMillis(upload.UploadedAt),
		nullString(upload.Project), nullString(upload.Notes), upload.FileRef, upload.OriginalName,
	)
	if err != nil {
		return fmt.Errorf("create recce upload: %w", err)
	}
	return nil
}

// ListRecce returns the user's uploads, newest first.
func ListRecce(ctx context.Context, q Querier, userID string) ([]*models.RecceUpload, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, user_id, uploaded_at, project, notes, file_ref, original_name
		 FROM recce WHERE user_id = ?
		 ORDER BY uploaded_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recce uploads: %w", err)
	}
	defer rows.Close()

	uploads := make([]*models.RecceUpload, 0)
	for rows.Next() {
		upload := &models.RecceUpload{}
		var uploadedAt int64
		var project, notes sql.NullString
		if err := rows.Scan(&upload.ID, &upload.UserID, &uploadedAt, &project, &notes, &upload.FileRef, &upload.OriginalName); err != nil {
			return nil, fmt.Errorf("scan recce upload: %w", err)
		}
		upload.UploadedAt = fromMillis(uploadedAt)
		upload.Project = project.String
		upload.Notes = notes.String
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recce uploads: %w", err)
	}
	return uploads, nil
}
