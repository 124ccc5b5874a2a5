package image

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) uploadOp() huma.Operation {
	return huma.Operation{
		OperationID: "images-upload",
		Method:      http.MethodPost,
		Path:        "/api/images",
		Summary:     "Attach an image to a credential",
		Tags:        []string{"images"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "images-delete",
		Method:      http.MethodDelete,
		Path:        "/api/images/{id}",
		Summary:     "Detach an image from a credential",
		Tags:        []string{"images"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) fetchOp() huma.Operation {
	return huma.Operation{
		OperationID: "images-fetch",
		Method:      http.MethodGet,
		Path:        "/api/images/{passwordId}/{imageId}",
		Summary:     "Serve the raw image bytes",
		Tags:        []string{"images"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
