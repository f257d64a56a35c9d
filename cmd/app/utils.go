package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/blogplatform/internal/blogservice"
	"github.com/sushihentaime/blogplatform/internal/common"
	"github.com/sushihentaime/blogplatform/internal/userservice"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, values := range headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// parseJSON decodes a single JSON object into dst. Unknown fields are ignored
// and an empty body leaves dst untouched, so missing fields surface as
// validation errors. A value of the wrong type for a known field is skipped:
// the decoder leaves that field empty and keeps going, and every body field is
// required, so the service reports it alongside the other invalid fields.
func (app *application) parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)

	err := decoder.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.As(err, &syntaxError):
			return fmt.Errorf("request body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("request body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				break
			}
			return fmt.Errorf("request body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("request body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = decoder.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("request body must only contain a single JSON value")
	}

	return nil
}

func (app *application) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

func (app *application) readListQuery(r *http.Request) common.ListQuery {
	return common.ListQueryFromValues(r.URL.Query())
}

func (app *application) readBlogQuery(r *http.Request) blogservice.BlogQuery {
	qs := r.URL.Query()

	return blogservice.BlogQuery{
		ListQuery:      common.ListQueryFromValues(qs),
		SearchNameTerm: qs.Get("searchNameTerm"),
	}
}

func (app *application) readUserQuery(r *http.Request) userservice.UserQuery {
	qs := r.URL.Query()

	return userservice.UserQuery{
		ListQuery:       common.ListQueryFromValues(qs),
		SearchLoginTerm: qs.Get("searchLoginTerm"),
		SearchEmailTerm: qs.Get("searchEmailTerm"),
	}
}
