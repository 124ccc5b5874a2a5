package password

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "passwords-list",
		Method:      http.MethodGet,
		Path:        "/api/passwords",
		Summary:     "List all credentials with decrypted secrets",
		Tags:        []string{"passwords"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "passwords-create",
		Method:        http.MethodPost,
		Path:          "/api/passwords",
		Summary:       "Create a credential",
		Tags:          []string{"passwords"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "passwords-update",
		Method:      http.MethodPut,
		Path:        "/api/passwords/{id}",
		Summary:     "Update a credential (partial merge)",
		Tags:        []string{"passwords"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "passwords-delete",
		Method:      http.MethodDelete,
		Path:        "/api/passwords/{id}",
		Summary:     "Delete a credential",
		Tags:        []string{"passwords"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
