package password

import "passvault/internal/domain/credential"

type listOutput struct {
	// Orphaned counts index entries whose record blob is missing; the
	// listing skips them but the operator can see the gap.
	Orphaned int `header:"X-Orphaned-Entries"`
	Body     []credential.View
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Name     string   `json:"name" doc:"Display name of the credential" minLength:"1"`
	Username string   `json:"username" doc:"Account username" minLength:"1"`
	Password string   `json:"password" doc:"Secret value, encrypted at rest" minLength:"1"`
	URL      string   `json:"url,omitempty"`
	Owner    string   `json:"owner,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Icon     string   `json:"icon,omitempty"`
}

type recordOutput struct {
	Body credential.View
}

type updateInput struct {
	ID   string `path:"id" doc:"Credential id"`
	Body updateRequest
}

// updateRequest is a partial patch: absent fields keep their stored
// values, which is why everything is a pointer.
type updateRequest struct {
	Name     *string   `json:"name,omitempty"`
	Username *string   `json:"username,omitempty"`
	Password *string   `json:"password,omitempty"`
	URL      *string   `json:"url,omitempty"`
	Owner    *string   `json:"owner,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Icon     *string   `json:"icon,omitempty"`
}

type deleteInput struct {
	ID string `path:"id" doc:"Credential id"`
}

type deleteOutput struct {
	Body deleteResponse
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
