package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError padroniza o corpo {"error": msg}.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]string{"error": msg})
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

/*
DecodeStrict decodifica JSON rejeitando chaves desconhecidas
e garantindo que exista exatamente UM objeto JSON.
Corpo vazio (io.EOF) é devolvido como está para o chamador decidir.
*/
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	// lixo depois do objeto
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}
	return nil
}
