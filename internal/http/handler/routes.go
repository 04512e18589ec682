package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/model"
	"docvault/internal/service"
)

// Request bodies use the wire names the browser client sends.

type createDocumentRequest struct {
	Name        string `json:"name"`
	FileName    string `json:"fileName"`
	FilePath    string `json:"filePath"`
	FileSize    string `json:"fileSize"`
	FileType    string `json:"fileType"`
	Category    string `json:"category"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
}

type updateDocumentRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
}

type deleteDocumentRequest struct {
	UserID int64 `json:"user_id"`
}

type favoriteRequest struct {
	UserID   int64 `json:"user_id"`
	Favorite bool  `json:"favorite"`
}

// RegisterRoutes attaches the document API to the provided Fiber app.
// Handlers stay thin: parse, delegate to the service, wrap the result in the
// response envelope. defaultUserID is applied only when a request omits the
// owner; every layer below receives an explicit owner id.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, catSvc service.CategoryService, defaultUserID int64) {
	api := app.Group("/api")

	// Liveness probe: checks DB connectivity only.
	api.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return ok(c, fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// List documents, filtered by owner, category, search text and date bucket.
	api.Get("/documents", func(c *fiber.Ctx) error {
		ownerID, err := ownerFromQuery(c, defaultUserID)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid user_id")
		}

		docs, err := docSvc.List(c.UserContext(), model.FilterCriteria{
			OwnerID:    ownerID,
			Category:   c.Query("category"),
			SearchText: c.Query("search"),
			DateBucket: model.ParseDateBucket(c.Query("date_filter")),
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to fetch documents")
		}
		return ok(c, docs)
	})

	// Create a metadata-only document.
	api.Post("/documents", func(c *fiber.Ctx) error {
		var req createDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.UserID == 0 {
			req.UserID = defaultUserID
		}

		doc, err := docSvc.Create(c.UserContext(), service.CreateDocumentInput{
			OwnerID:     req.UserID,
			Name:        req.Name,
			FileName:    req.FileName,
			FilePath:    req.FilePath,
			FileSize:    req.FileSize,
			FileType:    req.FileType,
			Category:    req.Category,
			Description: req.Description,
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to create document")
		}
		return ok(c, doc)
	})

	// Create a document from a real file upload (multipart/form-data, field name: file).
	api.Post("/documents/upload", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		ownerID := defaultUserID
		if v := c.FormValue("user_id"); v != "" {
			ownerID, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "invalid user_id")
			}
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docSvc.Upload(c.UserContext(), service.UploadInput{
			OwnerID:          ownerID,
			Name:             c.FormValue("name"),
			Category:         c.FormValue("category"),
			Description:      c.FormValue("description"),
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			Size:             fh.Size,
		}, f)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to upload document")
		}
		return ok(c, doc)
	})

	// Update a document's name, category and description.
	api.Put("/documents/:id", func(c *fiber.Ctx) error {
		id, err := idFromParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}

		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.UserID == 0 {
			req.UserID = defaultUserID
		}

		doc, err := docSvc.Update(c.UserContext(), service.UpdateDocumentInput{
			OwnerID:     req.UserID,
			ID:          id,
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
		})
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "failed to update document")
		}
		return ok(c, doc)
	})

	// Delete a document.
	api.Delete("/documents/:id", func(c *fiber.Ctx) error {
		id, err := idFromParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}

		var req deleteDocumentRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "invalid request body")
			}
		}
		if req.UserID == 0 {
			req.UserID = defaultUserID
		}

		if err := docSvc.Delete(c.UserContext(), req.UserID, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "failed to delete document")
		}
		return ok(c, nil)
	})

	// Toggle the favorite relation for a document.
	api.Post("/documents/:id/favorite", func(c *fiber.Ctx) error {
		id, err := idFromParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid id format")
		}

		var req favoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.UserID == 0 {
			req.UserID = defaultUserID
		}

		if err := docSvc.ToggleFavorite(c.UserContext(), req.UserID, id, req.Favorite); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to update favorite")
		}
		return ok(c, nil)
	})

	// List the owner's categories.
	api.Get("/categories", func(c *fiber.Ctx) error {
		ownerID, err := ownerFromQuery(c, defaultUserID)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid user_id")
		}

		cats, err := catSvc.List(c.UserContext(), ownerID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "failed to fetch categories")
		}
		return ok(c, cats)
	})
}

func ownerFromQuery(c *fiber.Ctx, def int64) (int64, error) {
	v := c.Query("user_id")
	if v == "" {
		return def, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func idFromParams(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
