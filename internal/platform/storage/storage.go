// Copyright (c) 2026 Socio. All rights reserved.

/*
Package storage defines the attachment store used by post creation and deletion.

It abstracts the physical location of uploaded media behind a narrow contract so
that the domain layer never touches the filesystem or a bucket SDK directly.

Core Responsibilities:

  - Upload: Persist raw bytes and hand back an opaque reference.
  - Delete: Remove the bytes behind a previously issued reference.
  - Kind detection: Classify an upload by its declared content type.
*/
package storage

import (
	"context"
	"strings"
)

// Store is the contract the post domain consumes for attachments.
type Store interface {

	/*
		Upload persists the given bytes and returns an opaque reference.

		Parameters:
		  - context: context.Context
		  - data: []byte (Raw file content)
		  - contentType: string (Declared MIME type)

		Returns:
		  - string: Opaque attachment reference
		  - error: Persistence failures
	*/
	Upload(context context.Context, data []byte, contentType string) (string, error)

	/*
		Delete removes the bytes behind a reference. Deleting an unknown
		reference is not an error.

		Parameters:
		  - context: context.Context
		  - reference: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, reference string) error
}

// # Attachment Kinds

// Kind classifies an attachment by its broad media family.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindPDF      Kind = "pdf"
	KindAudio    Kind = "audio"
	KindDocument Kind = "document"
)

// KindFromContentType derives the attachment [Kind] from a MIME content type.
func KindFromContentType(contentType string) Kind {
	switch {
	case contentType == "":
		return KindDocument
	case strings.HasPrefix(contentType, "image/"):
		return KindImage
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo
	case contentType == "application/pdf":
		return KindPDF
	case strings.HasPrefix(contentType, "audio/"):
		return KindAudio
	default:
		return KindDocument
	}
}
