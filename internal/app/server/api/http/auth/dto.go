package auth

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Username string `json:"username" doc:"Operator login" minLength:"1"`
	Password string `json:"password" doc:"Operator password" minLength:"1"`
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token string `json:"token"`
}
