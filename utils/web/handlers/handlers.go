package handlers

import (
	"net/http"

	"github.com/aakashsen704/virtual-memory-simulator/utils/web/server"
)

type HandshakeResponse struct {
	Module  string `json:"module"`
	Message string `json:"message"`
}

// HandshakeHandler se usa para chequear la conexión al servidor
//
// Parámetros:
//   - module: nombre del módulo que responde
//   - message: el mensaje que querés devolver en la respuesta
//
// Ejemplo:
//
//	func main() {
//		http.HandleFunc("GET /memoria", handlers.HandshakeHandler("memoria", "Memoria en funcionamiento"))
//
//		err := server.InitServer(8002)
//		if err != nil {
//			slog.Error("init server error: ", "error", err)
//		}
//	}
func HandshakeHandler(module string, message string) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		server.SendJsonResponse(writer, HandshakeResponse{Module: module, Message: message})
	}
}
