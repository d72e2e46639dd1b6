package dto

// ErrorResponse envoltura JSON de error: toda operación pública responde
// {ok:false, error:mensaje} con el estado HTTP según la clase de fallo.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Err construye la envoltura de error.
func Err(message string) ErrorResponse {
	return ErrorResponse{OK: false, Error: message}
}
