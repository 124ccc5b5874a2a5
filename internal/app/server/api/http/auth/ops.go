package auth

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Authenticate the operator and issue a bearer token",
		Tags:        []string{"auth"},
		Middlewares: h.middleware,
	}
}
