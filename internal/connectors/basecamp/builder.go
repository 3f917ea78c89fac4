package basecamp

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
	"github.com/custodia-labs/campsync-cli/internal/htmltext"
)

// timestampLayout is the exact wire format of Basecamp timestamps,
// e.g. 2023-01-02T03:04:05.000000+00:00. Anything else is a hard error
// for the record.
const timestampLayout = "2006-01-02T15:04:05.000000-07:00"

// BuildDocument maps one raw to-do and its comments into a document tree:
// a DOCUMENT parent whose Children are the comments in source order.
// Pure transformation, no I/O.
func BuildDocument(todo Todo, projectName, sourceID string) (domain.Document, error) {
	if err := checkRequired(todo.ID, todo.Creator.Name, todo.UpdatedAt); err != nil {
		return domain.Document{}, fmt.Errorf("todo %d: %w", todo.ID, err)
	}
	if todo.Content == "" {
		// The source guarantees to-do content; absence is a defect.
		return domain.Document{}, fmt.Errorf("todo %d: %w: content missing", todo.ID, domain.ErrMalformedRecord)
	}

	timestamp, err := parseTimestamp(todo.UpdatedAt)
	if err != nil {
		return domain.Document{}, fmt.Errorf("todo %d: %w", todo.ID, err)
	}

	children := make([]domain.Document, 0, len(todo.Comments))
	for _, comment := range todo.Comments {
		child, err := buildComment(comment, todo.AppURL, projectName, sourceID)
		if err != nil {
			return domain.Document{}, fmt.Errorf("todo %d: %w", todo.ID, err)
		}
		children = append(children, child)
	}

	content := htmltext.Convert(todo.Content)
	return domain.Document{
		ID:             strconv.FormatInt(todo.ID, 10),
		SourceID:       sourceID,
		Type:           domain.TypeDocument,
		Title:          todo.Creator.Name,
		Content:        &content,
		Author:         todo.Creator.Name,
		AuthorImageURL: todo.Creator.AvatarURL,
		Location:       projectName,
		URL:            todo.AppURL,
		Timestamp:      timestamp,
		Children:       children,
	}, nil
}

// buildComment maps one raw comment into a COMMENT document.
// Empty or absent comment content yields a nil Content, never an
// empty-string placeholder.
func buildComment(comment Comment, todoAppURL, projectName, sourceID string) (domain.Document, error) {
	if err := checkRequired(comment.ID, comment.Creator.Name, comment.UpdatedAt); err != nil {
		return domain.Document{}, fmt.Errorf("comment %d: %w", comment.ID, err)
	}

	timestamp, err := parseTimestamp(comment.UpdatedAt)
	if err != nil {
		return domain.Document{}, fmt.Errorf("comment %d: %w", comment.ID, err)
	}

	var content *string
	if comment.Content != "" {
		converted := htmltext.Convert(comment.Content)
		content = &converted
	}

	return domain.Document{
		ID:             strconv.FormatInt(comment.ID, 10),
		SourceID:       sourceID,
		Type:           domain.TypeComment,
		Title:          comment.Creator.Name,
		Content:        content,
		Author:         comment.Creator.Name,
		AuthorImageURL: comment.Creator.AvatarURL,
		Location:       projectName,
		URL:            fmt.Sprintf("%s#comment_%d", todoAppURL, comment.ID),
		Timestamp:      timestamp,
	}, nil
}

// checkRequired validates the fields every record must carry.
func checkRequired(id int64, creatorName, updatedAt string) error {
	var missing []string
	if id == 0 {
		missing = append(missing, "id")
	}
	if creatorName == "" {
		missing = append(missing, "creator.name")
	}
	if updatedAt == "" {
		missing = append(missing, "updated_at")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing fields %v", domain.ErrMalformedRecord, missing)
	}
	return nil
}

// parseTimestamp parses an updated_at value against the exact wire layout.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, s)
	}
	return t, nil
}
