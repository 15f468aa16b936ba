package rest

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/abhinavnt/article-hub/internal/core/domain"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// openUpload ouvre le fichier du champ `field`. nil (sans erreur) si le champ est absent.
// L'appelant doit appeler close() une fois le service terminé.
func openUpload(c echo.Context, field string) (*domain.MediaFile, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, domain.InvalidInput("invalid %s upload: %v", field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, domain.InvalidInput("cannot read %s upload", field)
	}

	return &domain.MediaFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// formValue : pointeur nil si le champ n'est pas présent dans le formulaire.
func formValue(form *multipart.Form, name string) *string {
	vals, ok := form.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

// parseTags accepte un tableau JSON (`["go","web"]`) ou une liste séparée par des virgules.
func parseTags(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, domain.InvalidInput("tags must be a JSON array of strings")
		}
		return tags, nil
	}
	return strings.Split(raw, ","), nil
}
