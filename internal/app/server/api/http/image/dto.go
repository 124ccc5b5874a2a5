package image

import (
	"mime/multipart"

	"passvault/internal/domain/credential"
)

type uploadInput struct {
	RawBody multipart.Form
}

type uploadOutput struct {
	Body uploadResponse
}

type uploadResponse struct {
	Success bool                `json:"success"`
	Image   credential.ImageRef `json:"image"`
}

type deleteInput struct {
	ID   string `path:"id" doc:"Image id"`
	Body deleteRequest
}

type deleteRequest struct {
	PasswordID string `json:"passwordId" doc:"Owning credential id" minLength:"1"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type fetchInput struct {
	PasswordID string `path:"passwordId" doc:"Owning credential id"`
	ImageID    string `path:"imageId" doc:"Image id"`
}

type fetchOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
