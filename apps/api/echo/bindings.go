package echoapi

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/lecture"
)

// flexInt accepts a JSON number, a numeric string, an empty string or null. Browser forms send all four.
type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return i.UnmarshalParam(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if v, err := n.Int64(); err == nil {
		*i = flexInt(v)
		return nil
	}
	// 2.0 and 1e2 are whole numbers too
	v, err := n.Float64()
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return errors.Errorf("%s is not a whole number", n)
	}
	*i = flexInt(v)
	return nil
}

// UnmarshalParam binds a form value.
func (i *flexInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*i = 0
		return nil
	}
	v, err := strconv.Atoi(param)
	if err != nil {
		return errors.Errorf("%q is not a number", param)
	}
	*i = flexInt(v)
	return nil
}

// notesParam is the notes of a lecture, sent either as an object or as a JSON encoded string.
type notesParam struct {
	notes *lecture.Notes
}

func (n *notesParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return n.UnmarshalParam(s)
	}
	if bytes.Equal(data, []byte("null")) {
		n.notes = nil
		return nil
	}
	var notes lecture.Notes
	if err := json.Unmarshal(data, &notes); err != nil {
		return err
	}
	n.notes = &notes
	return nil
}

func (n *notesParam) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		n.notes = nil
		return nil
	}
	if !strings.HasPrefix(param, "{") {
		// a bare value is a url reference
		n.notes = &lecture.Notes{Type: lecture.NotesURL, Content: param}
		return nil
	}
	var notes lecture.Notes
	if err := json.Unmarshal([]byte(param), &notes); err != nil {
		return errors.Wrap(err, "decoding notes")
	}
	n.notes = &notes
	return nil
}

// bind decodes a JSON, urlencoded or multipart body into dest.
func bind(ctx echo.Context, dest interface{}) error {
	if err := ctx.Bind(dest); err != nil {
		var herr *echo.HTTPError
		if errors.As(err, &herr) && herr.Code == http.StatusBadRequest {
			// the body limit tripped while the form was read
			if errors.Is(herr.Internal, echo.ErrStatusRequestEntityTooLarge) {
				return echo.ErrStatusRequestEntityTooLarge
			}
			msg := "Invalid request body"
			if herr.Internal != nil {
				msg = herr.Internal.Error()
			}
			return core.NewValidationError(errors.New(msg))
		}
		return errors.Wrap(err, "binding request")
	}
	return nil
}

func isMultipart(ctx echo.Context) bool {
	return strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// optionalFile returns the uploaded file of field, or nil when the request carries none.
func optionalFile(ctx echo.Context, field string) (*multipart.FileHeader, error) {
	if !isMultipart(ctx) {
		return nil, nil
	}
	fh, err := ctx.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s upload", field)
	}
	return fh, nil
}

// idParam parses a numeric path parameter. Anything else matches no record.
func idParam(ctx echo.Context, name string, notFound error) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 1 {
		return 0, notFound
	}
	return id, nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstInt(vals ...flexInt) int {
	for _, v := range vals {
		if v != 0 {
			return int(v)
		}
	}
	return 0
}
