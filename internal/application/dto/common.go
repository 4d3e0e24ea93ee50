package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	Total      int `json:"totalElements"`
	TotalPages int `json:"totalPages"`
}

// NewPageResponse calcula el total de páginas a partir del total de elementos.
func NewPageResponse(number, size, total int) PageResponse {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return PageResponse{Number: number, Size: size, Total: total, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
