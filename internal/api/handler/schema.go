package handler

// --- Requests ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Name     string `json:"nome"   validate:"required,max=150"`
	Password string `json:"senha"  validate:"required"`
	Role     string `json:"funcao" validate:"max=50"`
}

type changePasswordRequest struct {
	Username        string `json:"username"    validate:"required,max=150"`
	CurrentPassword string `json:"senha_atual"`
	NewPassword     string `json:"nova_senha"  validate:"required"`
}

type createEventRequest struct {
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	Duration    string `json:"tempo"`
	Author      string `json:"usuario"`
}

// --- Responses ---

type messageResponse struct {
	Msg string `json:"msg"`
}

type bootstrapResponse struct {
	Message string `json:"mensagem"`
}

type loginResponse struct {
	Status string `json:"status"`
	User   string `json:"usuario"`
	Role   string `json:"tipo"`
}

type eventCreatedResponse struct {
	Msg string `json:"msg"`
	ID  int64  `json:"id"`
}

type eventResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	Duration    string `json:"tempo"`
	Author      string `json:"usuario"`
	CreatedAt   string `json:"data_registro"`
}

type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
	Role string `json:"funcao"`
}
